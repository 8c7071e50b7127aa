package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

func MigrateUp(db *sql.DB, migrationsURL string) error {
	logrus.WithField("source", migrationSource(migrationsURL)).Info("Migrating up")

	m, err := newMigrate(db, migrationsURL)
	if err != nil {
		return fmt.Errorf("db.MigrateUp: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("db.MigrateUp: %w", err)
	}

	return nil
}

func MigrateDown(db *sql.DB, migrationsURL string) error {
	logrus.WithField("source", migrationSource(migrationsURL)).Info("Migrating down")

	m, err := newMigrate(db, migrationsURL)
	if err != nil {
		return fmt.Errorf("db.MigrateDown: %w", err)
	}

	err = m.Down()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("db.MigrateDown: %w", err)
	}

	return nil
}

// newMigrate reads migrations from migrationsURL, or from the embedded files when it is empty.
func newMigrate(db *sql.DB, migrationsURL string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	if migrationsURL != "" {
		return migrate.NewWithDatabaseInstance(migrationsURL, "postgres", driver)
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

func migrationSource(migrationsURL string) string {
	if migrationsURL == "" {
		return "embedded"
	}
	return migrationsURL
}
