package db

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"staffdir/internal/config"
)

func NewPostgresDB(cfg *config.PostgresConfig) (*sql.DB, error) {
	logrus.WithField("dsn", redact(cfg.Conn)).Info("Connecting db")
	db, err := sql.Open("postgres", cfg.Conn)
	if err != nil {
		return nil, fmt.Errorf("db.NewPostgresDB: %w", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db.NewPostgresDB: %w", err)
	}

	return db, nil
}

// redact hides the password of a URL style connection string.
func redact(conn string) string {
	u, err := url.Parse(conn)
	if err != nil || u.User == nil {
		return conn
	}
	return u.Redacted()
}
