package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/IlianBuh/Blog-service/internal/config"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		migrationsPath string
		down           bool
	)

	// registered before config.New parses the command line
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to directory with migration files")
	flag.BoolVar(&down, "down", false, "roll every migration back")
	cfg := config.New().Storage

	conn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	m, err := migrate.New(
		"file://"+migrationsPath,
		conn,
	)
	if err != nil {
		slog.Error("failed to create new migrator instance", sl.Err(err))
		return
	}

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no changes")
			return
		}
		slog.Error("failed to migrate", sl.Err(err))
		return
	}

	slog.Info("migrations are applied", slog.Bool("down", down))
}
