package internal

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrations ship inside the binary so a deploy is a single artifact; the
// inspections and sessions tables are created on first boot.
//
//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations applies any pending schema migrations. Called once at
// startup, before any store is constructed.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
