package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var EnvFiles = []string{".env", ".env.local"}

type Config struct {
	ServerAddress      string   `env:"SERVER_ADDRESS" envDefault:"0.0.0.0:8080"`
	APIToken           string   `env:"API_TOKEN"`
	MaxUploadSize      int64    `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	MaxUploadMemory    int64    `env:"MAX_UPLOAD_MEMORY" envDefault:"8388608"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MetricsPath        string   `env:"METRICS_PATH" envDefault:"/metrics"`
	PageSize           int      `env:"PAGE_SIZE" envDefault:"100"`
	LogConfig
	PostgresConfig
}

func NewConfig() (*Config, error) {
	config := &Config{}

	if _, err := LoadEnv(EnvFiles); err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}

	err := env.Parse(config)
	if err != nil {
		err = fmt.Errorf("config.NewConfig: %w", err)
	}
	return config, err
}

// LoadEnv loads the existing files among envFiles into the process environment
// and reports how many were found. Variables already set are not overridden.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"debug"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`
	File       string `env:"LOG_FILE"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
}

type PostgresConfig struct {
	Conn            string `env:"POSTGRES_CONN" envDefault:"postgres://staffdir:staffdir@db:5432/staffdir?sslmode=disable"`
	AutoMigrateUp   bool   `env:"AUTO_MIGRATE_UP" envDefault:"true"`
	AutoMigrateDown bool   `env:"AUTO_MIGRATE_DOWN" envDefault:"false"`
	// Empty means the migrations embedded into the binary.
	MigrationsURL string `env:"MIGRATIONS_URL"`
}

func NewPostgresConfig() (*PostgresConfig, error) {
	config := &PostgresConfig{}

	err := env.Parse(config)
	if err != nil {
		err = fmt.Errorf("config.NewPostgresConfig: %w", err)
	}
	return config, err
}
