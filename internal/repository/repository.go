package repository

import (
	"context"
	"errors"

	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by delete operations when no row matched
var ErrNotFound = errors.New("record not found")

// LanguageRepository defines operations for languages.
// Lookups return (nil, nil) when no row matches.
type LanguageRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Language, error)
	GetByID(ctx context.Context, id int64) (*model.Language, error)
	List(ctx context.Context) ([]model.Language, error)
	Create(ctx context.Context, language *model.Language) error
	Upsert(ctx context.Context, language *model.Language) error
	DeleteByCode(ctx context.Context, code string) error
}

// CountryRepository defines operations for countries
type CountryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
	Create(ctx context.Context, country *model.Country) error
	Upsert(ctx context.Context, country *model.Country) error
}

// TranslationRepository defines operations for translation rows
type TranslationRepository interface {
	Find(ctx context.Context, owner model.OwnerRef, field string, languageID int64) (*model.Translation, error)
	Upsert(ctx context.Context, owner model.OwnerRef, field string, languageID int64, value string) error
	ListByField(ctx context.Context, owner model.OwnerRef, field string) ([]model.LocalizedTranslation, error)
	ListByLanguage(ctx context.Context, owner model.OwnerRef, languageID int64) ([]model.LocalizedTranslation, error)
	// FieldsInLanguage lists every owner field with a translation in the language.
	FieldsInLanguage(ctx context.Context, languageID int64) ([]model.TranslatedField, error)
	DeleteByOwner(ctx context.Context, owner model.OwnerRef) (int64, error)
	CountByOwner(ctx context.Context, owner model.OwnerRef) (int, error)
	OwnersWithLanguage(ctx context.Context, ownerType string, ids []int64, languageID int64) ([]int64, error)
}

// Container holds all repositories
type Container struct {
	Language    LanguageRepository
	Country     CountryRepository
	Translation TranslationRepository
}

// NewRepositories creates repository implementations for the given schema.
// Statements are dialect-neutral; sqlx rebinds placeholders for the driver in use.
func NewRepositories(db *sqlx.DB, schema config.SchemaConfig) *Container {
	q := buildQueries(schema)
	return &Container{
		Language:    &languageRepository{db: db, q: q},
		Country:     &countryRepository{db: db, q: q},
		Translation: &translationRepository{db: db, q: q},
	}
}

// IsDatabaseEmpty reports whether no language has been seeded yet (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB, schema config.SchemaConfig) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM " + schema.LanguagesTable
	err := db.GetContext(ctx, &count, query)
	if err != nil {
		// Simplify error handling for non-existent tables
		return true, nil
	}
	return count == 0, nil
}
