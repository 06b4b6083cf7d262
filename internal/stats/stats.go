package stats

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp    time.Time        `json:"timestamp"`
	Database     DatabaseStats    `json:"database"`
	Translations TranslationStats `json:"translations"`
	Cache        *CacheStats      `json:"cache,omitempty"`
	Memory       MemoryStats      `json:"memory"`
	Runtime      RuntimeStats     `json:"runtime"`
}

type DatabaseStats struct {
	Type               string      `json:"type"`
	TotalRecords       int64       `json:"total_records"`
	SizeBytes          int64       `json:"size_bytes"`
	TableStats         []TableStat `json:"table_stats"`
	AvailableLanguages int         `json:"available_languages"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// TranslationStats describes how much of the catalog is translated.
type TranslationStats struct {
	Rows       int64           `json:"rows"`
	Languages  int             `json:"languages"`
	Owners     int             `json:"owners"`
	OwnerTypes []OwnerTypeStat `json:"owner_types"`
}

type OwnerTypeStat struct {
	OwnerType string `json:"owner_type" db:"owner_type"`
	Owners    int    `json:"owners" db:"owners"`
	Rows      int64  `json:"rows" db:"row_count"`
}

type CacheStats struct {
	Enabled bool          `json:"enabled"`
	Driver  string        `json:"driver"`
	TTL     time.Duration `json:"ttl"`
	// Entries is nil when the backend could not be queried.
	Entries *int `json:"entries,omitempty"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heap_inuse"`
	NumGC      uint32 `json:"num_gc"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

type Collector struct {
	db        *sqlx.DB
	config    config.DBConfig
	schema    config.SchemaConfig
	cache     cache.Cache
	cacheCfg  *config.CacheConfig
	startTime time.Time
}

func NewCollector(db *sqlx.DB, cfg config.DBConfig, schema config.SchemaConfig) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		schema:    schema,
		startTime: time.Now(),
	}
}

// WithCache adds a cache section to the collected statistics.
func (c *Collector) WithCache(backend cache.Cache, cfg config.CacheConfig) *Collector {
	c.cache = backend
	c.cacheCfg = &cfg
	return c
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Timestamp: time.Now(),
		Memory:    collectMemoryStats(),
		Runtime:   c.collectRuntimeStats(),
	}

	dbStats, err := c.collectDatabaseStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Database = *dbStats

	trStats, err := c.collectTranslationStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Translations = *trStats

	if c.cacheCfg != nil {
		stats.Cache = c.collectCacheStats(ctx)
	}

	return stats, nil
}

func collectMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		HeapInuse:  m.HeapInuse,
		NumGC:      m.NumGC,
	}
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type: string(c.config.Type),
	}

	if totalSize, err := c.getDatabaseSize(ctx); err == nil {
		stats.SizeBytes = totalSize
	}

	tableStats, err := c.getTableStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.TableStats = tableStats

	for _, ts := range tableStats {
		stats.TotalRecords += ts.RowCount
		if ts.Name == c.schema.LanguagesTable {
			stats.AvailableLanguages = int(ts.RowCount)
		}
	}

	return stats, nil
}

func (c *Collector) getDatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	var err error

	if c.config.Type == config.DBTypePostgreSQL {
		err = c.db.GetContext(ctx, &size, "SELECT pg_database_size(current_database())")
	} else {
		err = c.db.GetContext(ctx, &size, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	}

	if err != nil {
		return 0, err
	}
	return size, nil
}

func (c *Collector) getTableStats(ctx context.Context) ([]TableStat, error) {
	tables := []string{c.schema.CountriesTable, c.schema.LanguagesTable, c.schema.TranslationsTable}
	stats := make([]TableStat, 0, len(tables))

	for _, table := range tables {
		stat, err := c.getTableStat(ctx, table)
		if err != nil {
			continue
		}
		stats = append(stats, *stat)
	}

	return stats, nil
}

func (c *Collector) getTableStat(ctx context.Context, tableName string) (*TableStat, error) {
	stat := &TableStat{Name: tableName}

	if err := c.db.GetContext(ctx, &stat.RowCount, "SELECT COUNT(*) FROM "+tableName); err != nil {
		return nil, err
	}

	var size int64
	if c.config.Type == config.DBTypePostgreSQL {
		_ = c.db.GetContext(ctx, &size, `SELECT COALESCE(pg_total_relation_size($1::regclass), 0)`, tableName)
	} else {
		// dbstat is only present when SQLite is built with SQLITE_ENABLE_DBSTAT_VTAB.
		_ = c.db.GetContext(ctx, &size, `SELECT COALESCE(SUM(pgsize), 0) FROM dbstat WHERE name = ?`, tableName)
	}
	stat.SizeBytes = size

	return stat, nil
}

// collectTranslationStats counts translation rows, the languages they use
// and the distinct owner records, overall and per owner type.
func (c *Collector) collectTranslationStats(ctx context.Context) (*TranslationStats, error) {
	tc := c.schema.TranslationColumns
	table := c.schema.TranslationsTable

	var totals struct {
		Rows      int64 `db:"row_count"`
		Languages int   `db:"languages"`
	}
	query := fmt.Sprintf(
		`SELECT COUNT(*) AS row_count, COUNT(DISTINCT %s) AS languages FROM %s`,
		tc.LanguageID, table,
	)
	if err := c.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to count translations: %w", err)
	}

	byType := []OwnerTypeStat{}
	query = fmt.Sprintf(`
		SELECT %[1]s AS owner_type, COUNT(DISTINCT %[2]s) AS owners, COUNT(*) AS row_count
		FROM %[3]s
		GROUP BY %[1]s
		ORDER BY %[1]s
	`, tc.ModelType, tc.ModelID, table)
	if err := c.db.SelectContext(ctx, &byType, query); err != nil {
		return nil, fmt.Errorf("failed to count translations by owner type: %w", err)
	}

	stats := &TranslationStats{
		Rows:       totals.Rows,
		Languages:  totals.Languages,
		OwnerTypes: byType,
	}
	for _, ot := range byType {
		stats.Owners += ot.Owners
	}
	return stats, nil
}

func (c *Collector) collectCacheStats(ctx context.Context) *CacheStats {
	stats := &CacheStats{
		Enabled: c.cacheCfg.Enabled,
		Driver:  string(c.cacheCfg.Driver),
		TTL:     c.cacheCfg.TTL,
	}

	if counter, ok := c.cache.(cache.Counter); ok {
		if n, err := counter.Count(ctx, c.cacheCfg.Prefix); err == nil {
			stats.Entries = &n
		}
	}
	return stats
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
	}
}
