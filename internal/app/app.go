package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"staffdir/internal/config"
	"staffdir/internal/controller"
	"staffdir/internal/logging"
	"staffdir/internal/repository"
	"staffdir/internal/router"
	"staffdir/internal/service"
)

type App struct {
	repo       *repository.Repository
	service    *service.Service
	controller *controller.Controller
	logger     *logrus.Logger
	stopSig    chan os.Signal
	cfg        *config.Config

	Done chan struct{}
}

type option func(*App)

func WithConfig(cfg *config.Config) option {
	return func(app *App) {
		app.cfg = cfg
	}
}

func WithLogger(logger *logrus.Logger) option {
	return func(app *App) {
		app.logger = logger
	}
}

func NewApp(opts ...option) (*App, error) {
	var err error

	app := &App{
		stopSig: make(chan os.Signal, 2),
		Done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.cfg == nil {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, err
		}
		app.cfg = cfg
	}

	if app.logger == nil {
		app.logger, err = logging.NewLogger(app.cfg.LogConfig)
		if err != nil {
			return nil, err
		}
	}
	logrus.SetOutput(app.logger.Out)
	logrus.SetFormatter(app.logger.Formatter)
	logrus.SetLevel(app.logger.GetLevel())

	app.repo, err = repository.NewRepository(nil, &app.cfg.PostgresConfig)
	if err != nil {
		return nil, err
	}

	app.service = service.NewService(app.repo)
	app.controller = controller.NewController(app.service, app.cfg)

	return app, nil
}

func (app *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		signal.Notify(app.stopSig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-app.stopSig
		app.logger.WithField("signal", sig.String()).Info("Received signal")
		cancel()
	}()

	server := http.Server{
		Addr:         app.cfg.ServerAddress,
		Handler:      router.NewRouter(app.controller, app.cfg, app.logger),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.WithError(err).Error("Http server error")
			cancel()
		}
	}()

	app.logger.Infof("Server started at %s, listening for connections...", app.cfg.ServerAddress)
	<-ctx.Done()

	timeout, tcancel := context.WithTimeout(context.Background(), time.Second*10)
	defer tcancel()
	app.logger.Info("Shutting down http server...")
	if err := server.Shutdown(timeout); err != nil {
		app.logger.WithError(err).Warn("Http server shutdown error")
	}

	app.logger.Info("Closing repository...")
	err := app.repo.Close()
	if err != nil {
		app.logger.WithError(err).Error("Repository closing error")
	}

	close(app.Done)
	app.logger.Info("Exiting app.")
}

// Stop asks a running app to shut down, as SIGTERM would.
func (app *App) Stop() {
	app.stopSig <- syscall.SIGTERM
}
