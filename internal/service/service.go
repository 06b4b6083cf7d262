package service

import (
	"errors"

	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/translation"
)

var (
	// ErrNotFound means the addressed language or country does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a language code or country slug is taken
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput means a request is missing required data
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidLanguage means a language code is malformed or not configured
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrNotTranslatable means the owner type is not registered or the field is not whitelisted
	ErrNotTranslatable = errors.New("not translatable")
	// ErrTranslationFailed means the translation service refused or failed a write
	ErrTranslationFailed = errors.New("translation could not be stored")
)

// Service provides business logic for the API
type Service struct {
	languageRepo    repository.LanguageRepository
	countryRepo     repository.CountryRepository
	registry        *translation.Registry
	defaultLanguage string
}

// NewService creates a new service instance
func NewService(
	languageRepo repository.LanguageRepository,
	countryRepo repository.CountryRepository,
	registry *translation.Registry,
	defaultLanguage string,
) *Service {
	return &Service{
		languageRepo:    languageRepo,
		countryRepo:     countryRepo,
		registry:        registry,
		defaultLanguage: defaultLanguage,
	}
}
