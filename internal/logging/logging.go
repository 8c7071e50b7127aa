package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"staffdir/internal/config"
)

type ctxKey struct{}

// NewLogger builds the application logger. When a log file is configured the
// output goes both to stdout and to a size-rotated file.
func NewLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.NewLogger: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("logging.NewLogger: unknown log format %q", cfg.Format)
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	return logger, nil
}

// WithContext stores a request scoped logger in ctx.
func WithContext(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request scoped logger, or the standard logger when
// the context carries none.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok {
		return logger
	}
	return logrus.StandardLogger()
}
