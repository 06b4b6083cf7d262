package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, steps, force, or version")
		dir     = flag.String("dir", "migrations", "Directory holding the postgres/ and sqlite/ migration sets")
		n       = flag.Int("n", 0, "Step count for steps (negative rolls back) or target version for force")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.DB.IsMemory() {
		logger.Warn("In-memory database selected; the schema is discarded when this command exits")
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.DB, *dir)
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}

	switch *command {
	case "up":
		logger.Info("Running migrations UP", zap.String("source", database.MigrationsSource(*dir, cfg.DB)))
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		logger.Info("Running migrations DOWN", zap.String("source", database.MigrationsSource(*dir, cfg.DB)))
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "steps":
		if *n == 0 {
			logger.Fatal("steps requires a non-zero -n")
		}
		logger.Info("Applying migration steps", zap.Int("steps", *n))
		if err := m.Steps(*n); err != nil {
			logger.Fatal("Migration steps failed", zap.Error(err))
		}
	case "force":
		// Clears the dirty flag after a failed migration was fixed by hand.
		logger.Info("Forcing migration version", zap.Int("version", *n))
		if err := m.Force(*n); err != nil {
			logger.Fatal("Failed to force version", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}

	logger.Info("Migration command completed successfully")
}
