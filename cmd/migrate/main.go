// Comando de migraciones: aplica o revierte los archivos SQL de ./migrations.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate steps -n -1
//	go run ./cmd/migrate version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/comercio-api/pkg/config"
	"github.com/jhoicas/comercio-api/pkg/logger"
)

func main() {
	path := flag.String("path", "migrations", "directorio con los archivos de migración")
	steps := flag.Int("n", 0, "número de pasos para el subcomando steps")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	m, err := migrate.New("file://"+*path, pgxURL(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if *steps == 0 {
			log.Fatal().Msg("steps requiere -n distinto de cero")
		}
		err = m.Steps(*steps)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("consultar versión")
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "subcomando desconocido: %s (use up, down, steps o version)\n", cmd)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("sin cambios pendientes")
		return
	}
	log.Info().Str("cmd", cmd).Msg("migración aplicada")
}

// pgxURL cambia el esquema del DSN a pgx5 para que golang-migrate use el
// driver de pgx/v5 en lugar del de lib/pq.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	return dsn
}
