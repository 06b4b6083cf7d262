package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB           DBConfig
	Server       ServerConfig
	Cache        CacheConfig
	Translations TranslationsConfig
	Schema       SchemaConfig
	Seeder       SeederConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database
		if c.Name != "" && c.Name != "field_translations" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", c.Name)
		}
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// CacheDriver selects the cache backend
type CacheDriver string

const (
	CacheDriverMemory CacheDriver = "memory"
	CacheDriverRedis  CacheDriver = "redis"
)

// CacheConfig controls read-through caching of translations
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	Prefix   string
	Driver   CacheDriver
	RedisURL string
}

// TranslationsConfig holds language and translatable-model settings
type TranslationsConfig struct {
	DefaultLanguage string
	// Languages maps language code to display name.
	Languages map[string]string
	// Models maps an owner type tag to its translatable field whitelist.
	Models map[string][]string
}

// SchemaConfig names the tables and columns used by the repositories,
// so the schema can be renamed without code changes.
type SchemaConfig struct {
	CountriesTable     string
	LanguagesTable     string
	TranslationsTable  string
	LanguageColumns    LanguageColumns
	TranslationColumns TranslationColumns
}

// LanguageColumns are the column names of the languages table
type LanguageColumns struct {
	ID   string
	Name string
	Code string
}

// TranslationColumns are the column names of the translations table
type TranslationColumns struct {
	ID          string
	ModelType   string
	ModelID     string
	LanguageID  string
	Field       string
	Translation string
}

// DefaultSchema returns the table layout created by the bundled migrations
func DefaultSchema() SchemaConfig {
	return SchemaConfig{
		CountriesTable:    "countries",
		LanguagesTable:    "languages",
		TranslationsTable: "translations",
		LanguageColumns: LanguageColumns{
			ID:   "id",
			Name: "name",
			Code: "code",
		},
		TranslationColumns: TranslationColumns{
			ID:          "id",
			ModelType:   "model_type",
			ModelID:     "model_id",
			LanguageID:  "language_id",
			Field:       "field",
			Translation: "translation",
		},
	}
}

// SeederConfig holds settings for seeding and bulk translation import
type SeederConfig struct {
	BatchSize int
	// ImportFile is an optional TSV (or zipped TSV) of translations to import after seeding.
	ImportFile string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	driver := CacheDriver(getEnv("FIELD_TRANSLATIONS_CACHE_DRIVER", "memory"))
	if driver != CacheDriverMemory && driver != CacheDriverRedis {
		driver = CacheDriverMemory
	}

	languages := getEnvAsMap("FIELD_TRANSLATIONS_LANGUAGES", ":")
	if len(languages) == 0 {
		languages = map[string]string{
			"en": "English",
			"es": "Spanish",
			"fr": "French",
			"de": "German",
		}
	}

	models := make(map[string][]string)
	for tag, fields := range getEnvAsMap("FIELD_TRANSLATIONS_MODELS", ":") {
		models[tag] = splitList(fields, "|")
	}

	def := DefaultSchema()
	schema := SchemaConfig{
		CountriesTable:    getEnv("FIELD_TRANSLATIONS_COUNTRIES_TABLE", def.CountriesTable),
		LanguagesTable:    getEnv("FIELD_TRANSLATIONS_LANGUAGES_TABLE", def.LanguagesTable),
		TranslationsTable: getEnv("FIELD_TRANSLATIONS_TRANSLATIONS_TABLE", def.TranslationsTable),
		LanguageColumns: LanguageColumns{
			ID:   getEnv("FIELD_TRANSLATIONS_LANGUAGE_ID_COLUMN", def.LanguageColumns.ID),
			Name: getEnv("FIELD_TRANSLATIONS_LANGUAGE_NAME_COLUMN", def.LanguageColumns.Name),
			Code: getEnv("FIELD_TRANSLATIONS_LANGUAGE_CODE_COLUMN", def.LanguageColumns.Code),
		},
		TranslationColumns: TranslationColumns{
			ID:          getEnv("FIELD_TRANSLATIONS_TRANSLATION_ID_COLUMN", def.TranslationColumns.ID),
			ModelType:   getEnv("FIELD_TRANSLATIONS_MODEL_TYPE_COLUMN", def.TranslationColumns.ModelType),
			ModelID:     getEnv("FIELD_TRANSLATIONS_MODEL_ID_COLUMN", def.TranslationColumns.ModelID),
			LanguageID:  getEnv("FIELD_TRANSLATIONS_LANGUAGE_ID_FK_COLUMN", def.TranslationColumns.LanguageID),
			Field:       getEnv("FIELD_TRANSLATIONS_FIELD_COLUMN", def.TranslationColumns.Field),
			Translation: getEnv("FIELD_TRANSLATIONS_TEXT_COLUMN", def.TranslationColumns.Translation),
		},
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "field_translations"),
			Password: getEnv("DB_PASSWORD", "field_translations_password"),
			Name:     getEnv("DB_NAME", "field_translations"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Cache: CacheConfig{
			Enabled:  getEnvAsBool("FIELD_TRANSLATIONS_CACHE_ENABLED", true),
			TTL:      time.Duration(getEnvAsInt("FIELD_TRANSLATIONS_CACHE_TTL", 60*24)) * time.Minute,
			Prefix:   getEnv("FIELD_TRANSLATIONS_CACHE_PREFIX", "field_translations_"),
			Driver:   driver,
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Translations: TranslationsConfig{
			DefaultLanguage: getEnv("APP_LOCALE", "en"),
			Languages:       languages,
			Models:          models,
		},
		Schema: schema,
		Seeder: SeederConfig{
			BatchSize:  getEnvAsInt("SEEDER_BATCH_SIZE", 1000),
			ImportFile: getEnv("SEEDER_IMPORT_FILE", ""),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	return splitList(os.Getenv(key), ",")
}

// getEnvAsMap parses "k1<sep>v1,k2<sep>v2". Malformed pairs are skipped.
func getEnvAsMap(key, sep string) map[string]string {
	result := make(map[string]string)
	for _, pair := range getEnvAsSlice(key) {
		k, v, ok := strings.Cut(pair, sep)
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			continue
		}
		result[k] = v
	}
	return result
}

func splitList(value, sep string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
