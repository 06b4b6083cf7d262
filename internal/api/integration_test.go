package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/database"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/seeder"
	"github.com/alexivanou/field-translations/internal/service"
	"github.com/alexivanou/field-translations/internal/stats"
	"github.com/alexivanou/field-translations/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupIntegrationStack(t *testing.T, cacheEnabled bool) http.Handler {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dbName := fmt.Sprintf("testdb_%d", rng.Int())

	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: dbName,
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	schema := config.DefaultSchema()
	repos := repository.NewRepositories(db, schema)
	logger := zap.NewNop()

	cacheCfg := config.CacheConfig{
		Enabled: cacheEnabled,
		TTL:     time.Hour,
		Prefix:  "field_translations_",
		Driver:  config.CacheDriverMemory,
	}
	backend := cache.NewMemoryCache()
	translator := translation.NewService(repos, backend, cacheCfg, logger)
	registry := translation.NewRegistry(translator, "en", map[string][]string{
		"product": {"name", "description"},
		"page":    {"title"},
	})
	require.NoError(t, seeder.NewSeeder(repos, registry, config.TranslationsConfig{}, logger).Seed(context.Background()))
	svc := service.NewService(repos.Language, repos.Country, registry, "en")
	statsCollector := stats.NewCollector(db, cfg, schema).WithCache(backend, cacheCfg)

	return NewRouter(svc, statsCollector, logger)
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAPI_Integration_ProductTranslations(t *testing.T) {
	handler := setupIntegrationStack(t, true)

	rr := do(t, handler, "PUT", "/api/v1/translations/product/1/name?lang=es", `{"value":"Producto de Prueba"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = do(t, handler, "PUT", "/api/v1/translations/product/1/name?lang=fr", `{"value":"Produit de Test"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, handler, "GET", "/api/v1/translations/product/1/name?lang=es", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var field model.FieldTranslationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	require.NotNil(t, field.Value)
	assert.Equal(t, "Producto de Prueba", *field.Value)

	rr = do(t, handler, "GET", "/api/v1/translations/product/1/name?lang=de", "")
	require.Equal(t, http.StatusOK, rr.Code)
	field = model.FieldTranslationResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	assert.Nil(t, field.Value)

	rr = do(t, handler, "GET", "/api/v1/translations/product/1/name/all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all model.FieldTranslationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Equal(t, map[string]string{"es": "Producto de Prueba", "fr": "Produit de Test"}, all.Translations)

	// Overwrite is visible through the cache.
	rr = do(t, handler, "PUT", "/api/v1/translations/product/1/name?lang=es", `{"value":"Producto"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, handler, "GET", "/api/v1/translations/product/1/name?lang=es", "")
	field = model.FieldTranslationResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	assert.Equal(t, "Producto", *field.Value)

	rr = do(t, handler, "GET", "/api/v1/translations/product/1?lang=es", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var owner model.OwnerTranslationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &owner))
	assert.Len(t, owner.Translations, 2)
	assert.Nil(t, owner.Translations["description"])

	rr = do(t, handler, "PUT", "/api/v1/translations/product/1/sku?lang=es", `{"value":"ABC"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = do(t, handler, "PUT", "/api/v1/translations/product/1/name?lang=xx", `{"value":"?"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, handler, "DELETE", "/api/v1/translations/product/1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, handler, "GET", "/api/v1/translations/product/1/name?lang=es", "")
	field = model.FieldTranslationResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	assert.Nil(t, field.Value)
}

func TestAPI_Integration_Languages(t *testing.T) {
	handler := setupIntegrationStack(t, true)

	rr := do(t, handler, "GET", "/api/v1/languages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list model.LanguagesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 10, list.Count)

	rr = do(t, handler, "POST", "/api/v1/languages", `{"name":"Hebrew","code":"he"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created model.Language
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "hebrew", created.Slug)
	assert.True(t, created.RTL)

	rr = do(t, handler, "POST", "/api/v1/languages", `{"name":"Hebrew","code":"he"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, handler, "POST", "/api/v1/languages", `{"name":"Allar","code":"all"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Deleting a language removes its translations, cached copies included.
	rr = do(t, handler, "PUT", "/api/v1/translations/page/4/title?lang=he", `{"value":"בית"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = do(t, handler, "GET", "/api/v1/translations/page/4/title?lang=he", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, handler, "GET", "/api/v1/translations/page/4/title/all", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, handler, "DELETE", "/api/v1/languages/he", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, handler, "GET", "/api/v1/translations/page/4/title/all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all model.FieldTranslationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Empty(t, all.Translations)

	rr = do(t, handler, "DELETE", "/api/v1/languages/he", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, handler, "POST", "/api/v1/languages", `{"name":"Hebrew","code":"he"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = do(t, handler, "GET", "/api/v1/translations/page/4/title?lang=he", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var field model.FieldTranslationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	assert.Nil(t, field.Value)

	// Codes are matched in canonical form.
	rr = do(t, handler, "PUT", "/api/v1/translations/page/4/title?lang=pt-br", `{"value":"Início"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, handler, "POST", "/api/v1/languages", `{"name":"Portuguese (Brazil)","code":"pt-br"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = do(t, handler, "PUT", "/api/v1/translations/page/4/title?lang=PT-BR", `{"value":"Início"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = do(t, handler, "GET", "/api/v1/translations/page/4/title?lang=pt-br", "")
	require.Equal(t, http.StatusOK, rr.Code)
	field = model.FieldTranslationResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &field))
	require.NotNil(t, field.Value)
	assert.Equal(t, "Início", *field.Value)
	assert.Equal(t, "pt-BR", field.Language)
}

func TestAPI_Integration_CountriesAndStats(t *testing.T) {
	handler := setupIntegrationStack(t, false)

	rr := do(t, handler, "POST", "/api/v1/countries", `{"name":"Spain","time_zone":"Europe/Madrid","currency_code":"EUR"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, handler, "GET", "/api/v1/countries", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var countries model.CountriesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &countries))
	assert.Equal(t, 2, countries.Count)

	rr = do(t, handler, "PUT", "/api/v1/translations/page/3/title?lang=es", `{"value":"Inicio"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, handler, "GET", "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var s stats.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, 10, s.Database.AvailableLanguages)
	assert.Equal(t, int64(1), s.Translations.Rows)
	assert.Equal(t, []stats.OwnerTypeStat{{OwnerType: "page", Owners: 1, Rows: 1}}, s.Translations.OwnerTypes)
	require.NotNil(t, s.Cache)
	assert.False(t, s.Cache.Enabled)
}
