package app

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/thenamakop/taskboard/internal/config"
)

// MustRunMigrations brings the schema up to date at startup.
func MustRunMigrations() {
	cfg := config.Global().Postgres

	db, err := goose.OpenDBWithDriver("pgx", postgresConnURL(cfg))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to open migration connection")
		panic(err)
	}
	defer func() { _ = db.Close() }()

	err = goose.Up(db, cfg.MigrationsDir)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("dir", cfg.MigrationsDir).
			Msg("failed to run migrations")
		panic(err)
	}
	globalLogger.Info().
		Str("dir", cfg.MigrationsDir).
		Msg("ran migrations")
}
