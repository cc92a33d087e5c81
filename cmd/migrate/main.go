// Command migrate aplica las migraciones goose embebidas.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/recycle-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recycle-api/pkg/config"
	"github.com/jhoicas/recycle-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate <up|down|status|version|reset|redo> [args]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	command := os.Args[1]
	if err := postgres.Migrate(cfg.DB.ConnectionString(), command, os.Args[2:]...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migración fallida")
	}
	log.Info().Str("command", command).Msg("migración completada")
}
