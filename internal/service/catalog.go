package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/slug"
	"github.com/alexivanou/field-translations/internal/translation"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Scripts written right to left.
var rtlScripts = map[string]bool{
	"Adlm": true,
	"Arab": true,
	"Hebr": true,
	"Nkoo": true,
	"Rohg": true,
	"Syrc": true,
	"Thaa": true,
}

// ListLanguages returns every configured language ordered by code
func (s *Service) ListLanguages(ctx context.Context) ([]model.Language, error) {
	languages, err := s.languageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	if languages == nil {
		languages = []model.Language{}
	}
	return languages, nil
}

// GetLanguage returns the language with the given code
func (s *Service) GetLanguage(ctx context.Context, code string) (*model.Language, error) {
	lang, err := s.languageRepo.GetByCode(ctx, translation.NormalizeLanguage(code))
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	if lang == nil {
		return nil, ErrNotFound
	}
	return lang, nil
}

// CreateLanguage validates the code as a BCP 47 tag, derives the slug from
// the name and the text direction from the script when not given.
func (s *Service) CreateLanguage(ctx context.Context, req model.CreateLanguageRequest) (*model.Language, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	tag, err := parseLanguageCode(req.Code)
	if err != nil {
		return nil, err
	}
	code := tag.String()

	existing, err := s.languageRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check language: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: language %q", ErrAlreadyExists, code)
	}

	script, _ := tag.Script()
	lang := &model.Language{
		Name:      name,
		Slug:      slug.Make(name),
		Code:      code,
		CountryID: req.CountryID,
		RTL:       req.RTL || rtlScripts[script.String()],
	}
	if err := s.languageRepo.Create(ctx, lang); err != nil {
		return nil, fmt.Errorf("failed to create language: %w", err)
	}
	return lang, nil
}

// DeleteLanguage removes a language together with every translation stored
// in it. The translation service also drops the cached copies.
func (s *Service) DeleteLanguage(ctx context.Context, code string) error {
	err := s.registry.Service().DeleteLanguage(ctx, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, translation.ErrLanguageNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("failed to delete language: %w", err)
	}
}

// ListCountries returns every country ordered by name
func (s *Service) ListCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	if countries == nil {
		countries = []model.Country{}
	}
	return countries, nil
}

// CreateCountry stores a country; the currency must be an ISO 4217 code
func (s *Service) CreateCountry(ctx context.Context, req model.CreateCountryRequest) (*model.Country, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	currencyCode := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currencyCode != "" {
		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: currency %q", ErrInvalidInput, req.CurrencyCode)
		}
		currencyCode = unit.String()
	}

	country := &model.Country{
		Name:         name,
		Slug:         slug.Make(name),
		Flag:         req.Flag,
		TimeZone:     strings.TrimSpace(req.TimeZone),
		CurrencyCode: currencyCode,
	}

	existing, err := s.countryRepo.GetBySlug(ctx, country.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check country: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: country %q", ErrAlreadyExists, country.Slug)
	}

	if err := s.countryRepo.Create(ctx, country); err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return country, nil
}

func parseLanguageCode(code string) (language.Tag, error) {
	canonical, err := translation.CanonicalLanguage(code)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %v", ErrInvalidLanguage, err)
	}
	return language.Make(canonical), nil
}
