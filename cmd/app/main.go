package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/field-translations/internal/api"
	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/seeder"
	"github.com/alexivanou/field-translations/internal/service"
	"github.com/alexivanou/field-translations/internal/stats"
	"github.com/alexivanou/field-translations/internal/translation"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

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
	// Run migrations
	if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.Schema)

	// Nil when caching is disabled; Redis is not dialled until first use.
	translationCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Invalid cache configuration", zap.Error(err))
	}
	if rc, ok := translationCache.(*cache.RedisCache); ok {
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			// Reads fall back to the database and writes are refused until Redis returns.
			logger.Warn("Redis is unreachable", zap.Error(err))
		}
		cancel()
	}
	logger.Info("Translation cache configured",
		zap.Bool("enabled", cfg.Cache.Enabled),
		zap.String("driver", string(cfg.Cache.Driver)),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	translator := translation.NewService(repos, translationCache, cfg.Cache, logger)

	registry := translation.NewRegistry(translator, cfg.Translations.DefaultLanguage, cfg.Translations.Models)
	logger.Info("Translatable models registered", zap.Strings("types", registry.Types()))

	isEmpty, err := repository.IsDatabaseEmpty(ctx, db, cfg.Schema)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		logger.Info("Database is empty, auto-seeding data...")
		if err := seeder.NewSeeder(repos, registry, cfg.Translations, logger).Seed(ctx); err != nil {
			logger.Fatal("Failed to auto-seed database", zap.Error(err))
		}
		logger.Info("Database seeded successfully")
	}

	svc := service.NewService(repos.Language, repos.Country, registry, cfg.Translations.DefaultLanguage)
	statsCollector := stats.NewCollector(db, cfg.DB, cfg.Schema).WithCache(translationCache, cfg.Cache)
	router := api.NewRouter(svc, statsCollector, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
