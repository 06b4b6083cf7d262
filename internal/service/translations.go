package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/translation"
)

// translatable resolves the capability of owner. With a field it also checks
// the whitelist.
func (s *Service) translatable(owner model.OwnerRef, field string) (*translation.Translatable, error) {
	if !owner.Valid() {
		return nil, fmt.Errorf("%w: owner %s", ErrInvalidInput, owner)
	}
	tr, ok := s.registry.For(owner)
	if !ok {
		return nil, fmt.Errorf("%w: owner type %q", ErrNotTranslatable, owner.Type)
	}
	if field != "" && !tr.IsTranslatable(field) {
		return nil, fmt.Errorf("%w: field %q of %q", ErrNotTranslatable, field, owner.Type)
	}
	return tr, nil
}

// language applies the default and canonicalises the code, so responses
// echo the stored form.
func (s *Service) language(lang string) string {
	if strings.TrimSpace(lang) == "" {
		lang = s.defaultLanguage
	}
	return translation.NormalizeLanguage(lang)
}

// GetFieldTranslation returns one field of owner in lang. A missing
// translation is not an error; the response value is nil.
func (s *Service) GetFieldTranslation(ctx context.Context, owner model.OwnerRef, field, lang string) (*model.FieldTranslationResponse, error) {
	tr, err := s.translatable(owner, field)
	if err != nil {
		return nil, err
	}
	lang = s.language(lang)

	return &model.FieldTranslationResponse{
		Owner:    owner,
		Field:    field,
		Language: lang,
		Value:    tr.GetTranslationBatch(ctx, []string{field}, lang)[field],
	}, nil
}

// SetFieldTranslation stores one field of owner in lang. The language must exist.
func (s *Service) SetFieldTranslation(ctx context.Context, owner model.OwnerRef, field, lang, value string) error {
	tr, err := s.translatable(owner, field)
	if err != nil {
		return err
	}
	lang = s.language(lang)

	known, err := s.languageRepo.GetByCode(ctx, lang)
	if err != nil {
		return fmt.Errorf("failed to get language: %w", err)
	}
	if known == nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	if !tr.SetTranslation(ctx, field, lang, value) {
		return ErrTranslationFailed
	}
	return nil
}

// GetFieldTranslations returns every language variant of one field
func (s *Service) GetFieldTranslations(ctx context.Context, owner model.OwnerRef, field string) (*model.FieldTranslationsResponse, error) {
	tr, err := s.translatable(owner, field)
	if err != nil {
		return nil, err
	}
	return &model.FieldTranslationsResponse{
		Owner:        owner,
		Field:        field,
		Translations: tr.GetTranslations(ctx, field),
	}, nil
}

// GetOwnerTranslations returns every whitelisted field of owner in lang
func (s *Service) GetOwnerTranslations(ctx context.Context, owner model.OwnerRef, lang string) (*model.OwnerTranslationsResponse, error) {
	tr, err := s.translatable(owner, "")
	if err != nil {
		return nil, err
	}
	lang = s.language(lang)
	return &model.OwnerTranslationsResponse{
		Owner:        owner,
		Language:     lang,
		Translations: tr.GetTranslationsForLanguage(ctx, lang),
	}, nil
}

// DeleteOwner removes every translation of owner
func (s *Service) DeleteOwner(ctx context.Context, owner model.OwnerRef) error {
	tr, err := s.translatable(owner, "")
	if err != nil {
		return err
	}
	if !tr.Delete(ctx) {
		return ErrTranslationFailed
	}
	return nil
}
