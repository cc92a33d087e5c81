package postgres

import (
	"context"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql (goose)
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate ejecuta un comando goose (up, down, status, version, reset...) sobre las migraciones embebidas.
func Migrate(dsn, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión para migraciones: %w", err)
	}
	defer db.Close()

	if err := goose.RunContext(context.Background(), command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateUp aplica todas las migraciones pendientes.
func MigrateUp(dsn string) error {
	return Migrate(dsn, "up")
}
