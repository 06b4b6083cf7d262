package stats

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("stats_test_%d", rng.Int()),
	}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	return db, cfg
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO languages (name, slug, code) VALUES ('English', 'english', 'en'), ('Spanish', 'spanish', 'es')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO translations (language_id, model_type, model_id, field, translation) VALUES
		(2, 'product', 1, 'name', 'Producto'),
		(2, 'product', 1, 'description', 'Descripción'),
		(2, 'page', 1, 'title', 'Inicio')`)
	require.NoError(t, err)

	collector := NewCollector(db, cfg, config.DefaultSchema())

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(5), stats.Database.TotalRecords)
	assert.Equal(t, 2, stats.Database.AvailableLanguages)

	var translationsCount int64
	for _, ts := range stats.Database.TableStats {
		if ts.Name == "translations" {
			translationsCount = ts.RowCount
		}
	}
	assert.Equal(t, int64(3), translationsCount)

	assert.Equal(t, int64(3), stats.Translations.Rows)
	assert.Equal(t, 1, stats.Translations.Languages)
	assert.Equal(t, 2, stats.Translations.Owners)
	assert.Equal(t, []OwnerTypeStat{
		{OwnerType: "page", Owners: 1, Rows: 1},
		{OwnerType: "product", Owners: 1, Rows: 2},
	}, stats.Translations.OwnerTypes)

	assert.Nil(t, stats.Cache, "cache section is only present when configured")
	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)
}

func TestCollector_WithCache(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	backend := cache.NewMemoryCache()
	require.NoError(t, backend.Set(ctx, "ft_product_1_name_es", "Producto", 0))
	require.NoError(t, backend.Set(ctx, "unrelated", "v", 0))

	cacheCfg := config.CacheConfig{
		Enabled: true,
		TTL:     time.Hour,
		Prefix:  "ft_",
		Driver:  config.CacheDriverMemory,
	}
	collector := NewCollector(db, cfg, config.DefaultSchema()).WithCache(backend, cacheCfg)

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	require.NotNil(t, stats.Cache)
	assert.True(t, stats.Cache.Enabled)
	assert.Equal(t, "memory", stats.Cache.Driver)
	assert.Equal(t, time.Hour, stats.Cache.TTL)
	require.NotNil(t, stats.Cache.Entries)
	assert.Equal(t, 1, *stats.Cache.Entries)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	collector := NewCollector(db, cfg, config.DefaultSchema())

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Database.TotalRecords)
	assert.Len(t, stats.Database.TableStats, 3)
	assert.Zero(t, stats.Translations.Owners)
	assert.Empty(t, stats.Translations.OwnerTypes)
}
