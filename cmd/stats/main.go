package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/alexivanou/field-translations/internal/stats"
	"go.uber.org/zap"
)

func main() {
	defaultFormat := os.Getenv("OUTPUT_FORMAT")
	if defaultFormat == "" {
		defaultFormat = "json"
	}
	format := flag.String("format", defaultFormat, "Output format: json or text")
	withCache := flag.Bool("cache", false, "Include translation cache statistics")
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.IsMemory() {
		// A fresh in-memory database has no tables yet.
		if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	collector := stats.NewCollector(db, cfg.DB, cfg.Schema)
	if *withCache {
		backend, err := cache.New(cfg.Cache)
		if err != nil {
			logger.Warn("Invalid cache configuration", zap.Error(err))
		}
		if rc, ok := backend.(*cache.RedisCache); ok {
			defer rc.Close()
		}
		collector.WithCache(backend, cfg.Cache)
	}

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.DB.Type)))

	statistics, err := collector.Collect(ctx)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printReport(os.Stdout, statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
}

func printReport(out io.Writer, s *stats.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Field translations statistics\t%s\n\n", s.Timestamp.Format(time.RFC3339))

	fmt.Fprintf(w, "Database\t%s\t%s\n", s.Database.Type, formatBytes(uint64(s.Database.SizeBytes)))
	for _, ts := range s.Database.TableStats {
		fmt.Fprintf(w, "  %s\t%d rows\t%s\n", ts.Name, ts.RowCount, formatBytes(uint64(ts.SizeBytes)))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Translations\t%d rows\n", s.Translations.Rows)
	fmt.Fprintf(w, "  languages in use\t%d of %d\n", s.Translations.Languages, s.Database.AvailableLanguages)
	fmt.Fprintf(w, "  translated owners\t%d\n", s.Translations.Owners)
	for _, ot := range s.Translations.OwnerTypes {
		fmt.Fprintf(w, "  %s\t%d owners\t%d rows\n", ot.OwnerType, ot.Owners, ot.Rows)
	}
	fmt.Fprintln(w)

	if c := s.Cache; c != nil {
		entries := "unknown"
		if c.Entries != nil {
			entries = fmt.Sprint(*c.Entries)
		}
		fmt.Fprintf(w, "Cache\t%s\tenabled=%t ttl=%s entries=%s\n", c.Driver, c.Enabled, c.TTL, entries)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Memory\t%s allocated\t%s from OS\n", formatBytes(s.Memory.Alloc), formatBytes(s.Memory.Sys))
	fmt.Fprintf(w, "Runtime\t%d goroutines\t%d CPUs\n", s.Runtime.NumGoroutines, s.Runtime.NumCPU)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
