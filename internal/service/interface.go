package service

import (
	"context"

	"github.com/alexivanou/field-translations/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ListLanguages(ctx context.Context) ([]model.Language, error)
	GetLanguage(ctx context.Context, code string) (*model.Language, error)
	CreateLanguage(ctx context.Context, req model.CreateLanguageRequest) (*model.Language, error)
	DeleteLanguage(ctx context.Context, code string) error
	ListCountries(ctx context.Context) ([]model.Country, error)
	CreateCountry(ctx context.Context, req model.CreateCountryRequest) (*model.Country, error)

	GetFieldTranslation(ctx context.Context, owner model.OwnerRef, field, lang string) (*model.FieldTranslationResponse, error)
	SetFieldTranslation(ctx context.Context, owner model.OwnerRef, field, lang, value string) error
	GetFieldTranslations(ctx context.Context, owner model.OwnerRef, field string) (*model.FieldTranslationsResponse, error)
	GetOwnerTranslations(ctx context.Context, owner model.OwnerRef, lang string) (*model.OwnerTranslationsResponse, error)
	DeleteOwner(ctx context.Context, owner model.OwnerRef) error
}
