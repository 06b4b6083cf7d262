// Package seeder loads reference data (the default country and languages)
// and bulk-imports translations from TSV files.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/repository"
	"github.com/alexivanou/field-translations/internal/slug"
	"github.com/alexivanou/field-translations/internal/translation"
	"go.uber.org/zap"
)

// defaultLanguages are always seeded; configured languages are added on top
// and override these names.
var defaultLanguages = []struct {
	Name string
	Code string
}{
	{"English", "en"},
	{"Spanish", "es"},
	{"French", "fr"},
	{"German", "de"},
	{"Italian", "it"},
	{"Portuguese", "pt"},
	{"Russian", "ru"},
	{"Chinese", "zh"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
}

var (
	// ErrUnknownOwnerType means an imported row names an unregistered owner type.
	ErrUnknownOwnerType = errors.New("owner type is not translatable")
	// ErrFieldNotTranslatable means an imported row names a field outside the whitelist.
	ErrFieldNotTranslatable = errors.New("field is not translatable")
	// ErrNotStored means the translation service refused the row (unknown language, storage failure).
	ErrNotStored = errors.New("translation not stored")
)

func defaultCountry() model.Country {
	flag := "us"
	return model.Country{
		Name:         "United States",
		Slug:         slug.Make("United States"),
		Flag:         &flag,
		TimeZone:     "America/New_York",
		CurrencyCode: "USD",
	}
}

// Seeder writes reference data through the repositories
type Seeder struct {
	repos    *repository.Container
	registry *translation.Registry
	cfg      config.TranslationsConfig
	logger   *zap.Logger
}

// NewSeeder creates a seeder. registry is only needed for Import; imported
// rows are limited to its owner types and field whitelists.
func NewSeeder(repos *repository.Container, registry *translation.Registry, cfg config.TranslationsConfig, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		repos:    repos,
		registry: registry,
		cfg:      cfg,
		logger:   logger.Named("seeder"),
	}
}

// Seed upserts the default country and every language. It can be run repeatedly.
func (s *Seeder) Seed(ctx context.Context) error {
	country := defaultCountry()
	if err := s.repos.Country.Upsert(ctx, &country); err != nil {
		return fmt.Errorf("failed to seed country %q: %w", country.Slug, err)
	}
	s.logger.Info("country seeded", zap.String("slug", country.Slug), zap.Int64("id", country.ID))

	languages := s.languages()
	for i := range languages {
		if err := s.repos.Language.Upsert(ctx, &languages[i]); err != nil {
			return fmt.Errorf("failed to seed language %q: %w", languages[i].Code, err)
		}
	}
	s.logger.Info("languages seeded", zap.Int("count", len(languages)))
	return nil
}

// languages merges the built-in list with the configured map, ordered by
// canonical code. Configured codes that are not valid tags are skipped.
func (s *Seeder) languages() []model.Language {
	names := make(map[string]string, len(defaultLanguages)+len(s.cfg.Languages))
	for _, l := range defaultLanguages {
		names[l.Code] = l.Name
	}

	configured := make([]string, 0, len(s.cfg.Languages))
	for code := range s.cfg.Languages {
		configured = append(configured, code)
	}
	sort.Strings(configured)
	for _, code := range configured {
		canonical, err := translation.CanonicalLanguage(code)
		if err != nil {
			s.logger.Warn("configured language skipped", zap.String("code", code), zap.Error(err))
			continue
		}
		names[canonical] = s.cfg.Languages[code]
	}

	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	languages := make([]model.Language, 0, len(codes))
	used := make(map[string]bool, len(codes))
	for _, code := range codes {
		languageSlug := slug.Make(names[code])
		if used[languageSlug] {
			// Regional variants often share a display name.
			languageSlug = slug.Make(names[code] + " " + code)
		}
		used[languageSlug] = true
		languages = append(languages, model.Language{
			Name: names[code],
			Slug: languageSlug,
			Code: code,
		})
	}
	return languages
}

// ImportResult counts the outcome of an import
type ImportResult struct {
	Stored int
	Failed int
}

// Import streams a translation file into storage in batches. Rows that are
// refused (unregistered owner type, field outside the whitelist, unknown
// language, storage failure) are counted and logged, not fatal.
func (s *Seeder) Import(ctx context.Context, path string, batchSize int) (ImportResult, error) {
	var result ImportResult
	if s.registry == nil {
		return result, fmt.Errorf("import requires a translation registry")
	}

	parser := NewParser(batchSize, nil)
	err := parser.ParseFile(path, func(batch []TranslationRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, r := range batch {
			if err := s.importRecord(ctx, r); err != nil {
				result.Failed++
				s.logger.Warn("translation not imported",
					zap.Stringer("owner", r.Owner),
					zap.String("field", r.Field),
					zap.String("language", r.Language),
					zap.Error(err),
				)
				continue
			}
			result.Stored++
		}
		s.logger.Debug("batch imported", zap.Int("size", len(batch)), zap.Int("stored", result.Stored))
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to import %s: %w", path, err)
	}

	s.logger.Info("translations imported",
		zap.String("file", path),
		zap.Int("stored", result.Stored),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *Seeder) importRecord(ctx context.Context, r TranslationRecord) error {
	tr, ok := s.registry.For(r.Owner)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOwnerType, r.Owner.Type)
	}
	if !tr.IsTranslatable(r.Field) {
		return fmt.Errorf("%w: %q of %q", ErrFieldNotTranslatable, r.Field, r.Owner.Type)
	}
	if !tr.SetTranslation(ctx, r.Field, r.Language, r.Value) {
		return ErrNotStored
	}
	return nil
}
