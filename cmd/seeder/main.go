package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/seeder"
	"github.com/alexivanou/field-translations/internal/translation"
	"go.uber.org/zap"
)

func main() {
	importFile := flag.String("import", "", "TSV (or zip) file of translations to import; defaults to SEEDER_IMPORT_FILE")
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

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	ctx := context.Background()
	// Auto-migrate if using memory DB to ensure schema exists
	if cfg.DB.IsMemory() {
		if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	repos := repository.NewRepositories(db, cfg.Schema)

	// Imported rows must invalidate whatever the running app has cached.
	translationCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Invalid cache configuration", zap.Error(err))
	}
	if rc, ok := translationCache.(*cache.RedisCache); ok {
		defer rc.Close()
	}
	translator := translation.NewService(repos, translationCache, cfg.Cache, logger)
	registry := translation.NewRegistry(translator, cfg.Translations.DefaultLanguage, cfg.Translations.Models)

	s := seeder.NewSeeder(repos, registry, cfg.Translations, logger)

	logger.Info("Seeding countries and languages...")
	if err := s.Seed(ctx); err != nil {
		logger.Fatal("Failed to seed", zap.Error(err))
	}

	path := *importFile
	if path == "" {
		path = cfg.Seeder.ImportFile
	}
	if path == "" {
		logger.Info("Seeding completed successfully!")
		return
	}

	logger.Info("Importing translations (streaming mode)...", zap.String("file", path))
	result, err := s.Import(ctx, path, cfg.Seeder.BatchSize)
	if err != nil {
		logger.Fatal("Failed to import translations", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("stored", result.Stored),
		zap.Int("failed", result.Failed),
	)
}
