package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepos(t *testing.T) *repository.Container {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("seeder_test_%d", rng.Int()),
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	return repository.NewRepositories(db, config.DefaultSchema())
}

func TestSeeder_Seed(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	s := NewSeeder(repos, nil, config.TranslationsConfig{
		Languages: map[string]string{
			"en":    "English (US)",
			"uk":    "Ukrainian",
			"pt-br": "Portuguese",
			"all":   "Allar",
			"bad!":  "Broken",
		},
	}, zap.NewNop())

	require.NoError(t, s.Seed(ctx))
	// Seeding twice must not duplicate anything.
	require.NoError(t, s.Seed(ctx))

	countries, err := repos.Country.List(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "united-states", countries[0].Slug)
	assert.Equal(t, "USD", countries[0].CurrencyCode)
	require.NotNil(t, countries[0].Flag)
	assert.Equal(t, "us", *countries[0].Flag)

	languages, err := repos.Language.List(ctx)
	require.NoError(t, err)
	assert.Len(t, languages, 12)

	byCode := make(map[string]model.Language)
	for _, l := range languages {
		byCode[l.Code] = l
	}
	assert.Equal(t, "English (US)", byCode["en"].Name)
	assert.Equal(t, "Ukrainian", byCode["uk"].Name)
	assert.Equal(t, "Korean", byCode["ko"].Name)
	assert.Equal(t, "portuguese", byCode["pt"].Slug)
	assert.Equal(t, "portuguese-pt-br", byCode["pt-BR"].Slug)
}

func TestSeeder_Import(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	translator := translation.NewService(repos, nil, config.CacheConfig{}, zap.NewNop())
	registry := translation.NewRegistry(translator, "en", map[string][]string{
		"product": {"name", "description"},
	})
	s := NewSeeder(repos, registry, config.TranslationsConfig{}, zap.NewNop())
	require.NoError(t, s.Seed(ctx))

	data := "product\t1\tname\tes\tProducto de Prueba\n" +
		"product\t1\tname\tfr\tProduit de Test\n" +
		"product\t2\tname\txx\tunknown language\n" +
		"product\t3\tsecret\ten\tnot whitelisted\n" +
		"warehouse\t4\tname\ten\tunregistered owner type\n"
	path := filepath.Join(t.TempDir(), "translations.tsv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	result, err := s.Import(ctx, path, 2)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Stored: 2, Failed: 3}, result)

	value, ok := translator.Bind(model.OwnerRef{Type: "product", ID: 1}).GetTranslation(ctx, "name", "fr")
	assert.True(t, ok)
	assert.Equal(t, "Produit de Test", value)

	for _, owner := range []model.OwnerRef{{Type: "product", ID: 3}, {Type: "warehouse", ID: 4}} {
		n, err := repos.Translation.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Zero(t, n, "no row may be stored for %s", owner)
	}

	t.Run("requires registry", func(t *testing.T) {
		_, err := NewSeeder(repos, nil, config.TranslationsConfig{}, nil).Import(ctx, path, 10)
		assert.Error(t, err)
	})
}

func TestSeeder_ImportRecord(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	translator := translation.NewService(repos, nil, config.CacheConfig{}, zap.NewNop())
	registry := translation.NewRegistry(translator, "en", map[string][]string{"page": {"title"}})
	s := NewSeeder(repos, registry, config.TranslationsConfig{}, zap.NewNop())
	require.NoError(t, s.Seed(ctx))

	page := model.OwnerRef{Type: "page", ID: 1}
	assert.NoError(t, s.importRecord(ctx, TranslationRecord{Owner: page, Field: "title", Language: "de", Value: "Startseite"}))
	assert.ErrorIs(t, s.importRecord(ctx, TranslationRecord{Owner: page, Field: "body", Language: "de", Value: "x"}), ErrFieldNotTranslatable)
	assert.ErrorIs(t, s.importRecord(ctx, TranslationRecord{Owner: model.OwnerRef{Type: "post", ID: 1}, Field: "title", Language: "de", Value: "x"}), ErrUnknownOwnerType)
	assert.ErrorIs(t, s.importRecord(ctx, TranslationRecord{Owner: page, Field: "title", Language: "xx", Value: "x"}), ErrNotStored)
}
