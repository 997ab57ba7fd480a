// Package migration applies the embedded SQL schema with golang-migrate.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"jbfsport-backend/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrator runs the embedded migrations against a Postgres *sql.DB.
// The migrator takes ownership of db and closes it in Close.
type Migrator struct {
	migrate *migrate.Migrate
}

func New(db *sql.DB) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m}, nil
}

// Up runs all pending migrations.
func (m *Migrator) Up() error {
	logger.Info().Msg("Running migrations up")

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info().Msg("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations completed")
	return nil
}

// Down rolls back every migration.
func (m *Migrator) Down() error {
	logger.Warn().Msg("Running migrations down")

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info().Msg("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	logger.Info().Msg("All migrations rolled back")
	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

// Run applies "up" or "down" and closes the migrator, db included.
func Run(db *sql.DB, direction string) error {
	m, err := New(db)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}
