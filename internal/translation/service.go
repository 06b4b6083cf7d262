// Package translation stores and resolves per-field, per-language
// translations of owner records, with optional read-through caching.
//
// Every translation method of Service is total: failures are logged and
// turned into an empty result (nil, empty map, or false) instead of being
// returned. Callers therefore cannot tell a missing translation from a backend
// outage; the log stream carries the difference. DeleteLanguage is the
// exception, as callers must report a missing language.
//
// Language codes are canonicalised (see NormalizeLanguage) before they reach
// storage or a cache key.
package translation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/config"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/repository"
	"go.uber.org/zap"
)

// Service resolves and stores translations for one bound owner record.
// Bind returns a bound copy; a Service is safe to share once bound.
type Service struct {
	languages    repository.LanguageRepository
	translations repository.TranslationRepository
	cache        cache.Cache
	ttl          time.Duration
	prefix       string
	logger       *zap.Logger
	owner        model.OwnerRef
}

// NewService creates an unbound service. The cache is only used when
// cfg.Enabled is set; c may be nil otherwise.
func NewService(repos *repository.Container, c cache.Cache, cfg config.CacheConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		languages:    repos.Language,
		translations: repos.Translation,
		ttl:          cfg.TTL,
		prefix:       cfg.Prefix,
		logger:       logger.Named("translation"),
	}
	if cfg.Enabled && c != nil {
		s.cache = c
	}
	return s
}

// Bind returns a copy of the service bound to owner.
func (s *Service) Bind(owner model.Owner) *Service {
	bound := *s
	bound.owner = model.RefOf(owner)
	return &bound
}

// Owner returns the bound owner context.
func (s *Service) Owner() model.OwnerRef {
	return s.owner
}

// CachingEnabled reports whether reads go through the cache.
func (s *Service) CachingEnabled() bool {
	return s.cache != nil
}

// Key returns the cache key for field in language for the bound owner.
func (s *Service) Key(field, language string) string {
	return Key(s.prefix, s.owner, field, language)
}

// WriteOption customises a write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	owner *model.OwnerRef
}

// WithOwner writes for owner instead of the bound owner.
func WithOwner(owner model.Owner) WriteOption {
	return func(o *writeOptions) {
		ref := model.RefOf(owner)
		o.owner = &ref
	}
}

// GetTranslation returns the translation of field in language.
func (s *Service) GetTranslation(ctx context.Context, field, language string) (string, bool) {
	value := s.GetTranslationBatch(ctx, []string{field}, language)[field]
	if value == nil {
		return "", false
	}
	return *value, true
}

// GetTranslationBatch resolves several fields in one language. Every requested
// field is present in the result; a nil value means no translation.
func (s *Service) GetTranslationBatch(ctx context.Context, fields []string, language string) map[string]*string {
	result := make(map[string]*string, len(fields))
	for _, field := range fields {
		result[field] = nil
	}
	if !s.owner.Valid() {
		s.report("get translation", s.owner, "", language, ErrOwnerMissing)
		return result
	}
	language = NormalizeLanguage(language)
	if reservedLanguage(language) {
		// The key of this "language" holds the encoded map of every variant.
		s.report("get translation", s.owner, "", language, ErrLanguageNotFound)
		return result
	}

	lookup := s.languageLookup(ctx, language)
	for _, field := range fields {
		value, found, err := s.remember(ctx, s.Key(field, language), func() (string, bool, error) {
			return s.fetchTranslation(ctx, lookup, field)
		})
		if err != nil {
			s.report("get translation", s.owner, field, language, err)
			continue
		}
		if found {
			v := value
			result[field] = &v
		}
	}
	return result
}

// SetTranslation stores value for field in language.
func (s *Service) SetTranslation(ctx context.Context, field, language, value string, opts ...WriteOption) bool {
	return s.SetTranslationBatch(ctx, []string{field}, language, map[string]string{field: value}, opts...)
}

// SetTranslationBatch stores values[field] for each field in language.
// An unknown language writes nothing. Otherwise each field is written on its
// own; the result is true only if every field was stored, and fields written
// before a failure stay written.
func (s *Service) SetTranslationBatch(ctx context.Context, fields []string, language string, values map[string]string, opts ...WriteOption) bool {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}
	owner := s.owner
	if o.owner != nil {
		owner = *o.owner
	}

	if !owner.Valid() {
		s.report("set translation", owner, "", language, ErrOwnerMissing)
		return false
	}
	if len(fields) == 0 {
		return false
	}

	language = NormalizeLanguage(language)
	lang, err := s.languageLookup(ctx, language)()
	if err != nil {
		s.report("set translation", owner, "", language, err)
		return false
	}

	ok := true
	for _, field := range fields {
		value, present := values[field]
		if !present {
			s.report("set translation", owner, field, language, ErrValueMissing)
			ok = false
			continue
		}
		if err := s.storeTranslation(ctx, owner, field, lang, value); err != nil {
			s.report("set translation", owner, field, language, err)
			ok = false
			continue
		}
		s.logger.Debug("translation stored",
			zap.String("owner_type", owner.Type),
			zap.Int64("owner_id", owner.ID),
			zap.String("field", field),
			zap.String("language", language),
		)
	}
	return ok
}

// GetTranslations returns every stored variant of field keyed by language code.
func (s *Service) GetTranslations(ctx context.Context, field string) map[string]string {
	return s.GetTranslationsBatch(ctx, []string{field})[field]
}

// GetTranslationsBatch returns, per field, every stored variant keyed by language code.
func (s *Service) GetTranslationsBatch(ctx context.Context, fields []string) map[string]map[string]string {
	result := make(map[string]map[string]string, len(fields))
	for _, field := range fields {
		result[field] = map[string]string{}
	}
	if !s.owner.Valid() {
		s.report("get translations", s.owner, "", AllLanguages, ErrOwnerMissing)
		return result
	}

	for _, field := range fields {
		encoded, found, err := s.remember(ctx, s.Key(field, AllLanguages), func() (string, bool, error) {
			return s.fetchAllTranslations(ctx, field)
		})
		if err != nil {
			s.report("get translations", s.owner, field, AllLanguages, err)
			continue
		}
		if !found {
			continue
		}
		variants := map[string]string{}
		if err := json.Unmarshal([]byte(encoded), &variants); err != nil {
			s.report("get translations", s.owner, field, AllLanguages, &StorageError{Op: "decode cached translations", Err: err})
			continue
		}
		result[field] = variants
	}
	return result
}

// HasTranslation reports whether field has a translation in language.
func (s *Service) HasTranslation(ctx context.Context, field, language string) bool {
	return s.HasTranslationBatch(ctx, []string{field}, language)
}

// HasTranslationBatch reports whether every field has a translation in
// language. An empty batch reports false.
func (s *Service) HasTranslationBatch(ctx context.Context, fields []string, language string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, value := range s.GetTranslationBatch(ctx, fields, language) {
		if value == nil {
			return false
		}
	}
	return true
}

// GetTranslationsForLanguage returns every stored field of the bound owner in
// language, keyed by field name.
func (s *Service) GetTranslationsForLanguage(ctx context.Context, language string) map[string]string {
	result := map[string]string{}
	if !s.owner.Valid() {
		s.report("get translations for language", s.owner, "", language, ErrOwnerMissing)
		return result
	}

	language = NormalizeLanguage(language)
	lang, err := s.languageLookup(ctx, language)()
	if err != nil {
		s.report("get translations for language", s.owner, "", language, err)
		return result
	}

	rows, err := s.translations.ListByLanguage(ctx, s.owner, lang.ID)
	if err != nil {
		s.report("get translations for language", s.owner, "", language, &StorageError{Op: "list translations by language", Err: err})
		return result
	}
	for _, row := range rows {
		result[row.Field] = row.Translation
	}
	return result
}

// DeleteTranslations removes every translation row of the bound owner and
// drops the cache entries of fields in every known language. It is the
// owner-deletion hook.
func (s *Service) DeleteTranslations(ctx context.Context, fields []string) bool {
	if !s.owner.Valid() {
		s.report("delete translations", s.owner, "", "", ErrOwnerMissing)
		return false
	}

	ok := true
	if s.cache != nil && len(fields) > 0 {
		languages, err := s.languages.List(ctx)
		if err != nil {
			s.report("delete translations", s.owner, "", "", &StorageError{Op: "list languages", Err: err})
			ok = false
		}
		keys := make([]string, 0, len(fields)*(len(languages)+1))
		for _, field := range fields {
			keys = append(keys, s.Key(field, AllLanguages))
			for _, lang := range languages {
				keys = append(keys, s.Key(field, lang.Code))
			}
		}
		if err := s.forget(ctx, keys...); err != nil {
			s.report("delete translations", s.owner, "", "", err)
			ok = false
		}
	}

	deleted, err := s.translations.DeleteByOwner(ctx, s.owner)
	if err != nil {
		s.report("delete translations", s.owner, "", "", &StorageError{Op: "delete owner translations", Err: err})
		return false
	}
	s.logger.Debug("owner translations deleted",
		zap.String("owner_type", s.owner.Type),
		zap.Int64("owner_id", s.owner.ID),
		zap.Int64("rows", deleted),
	)
	return ok
}

// OwnersMissingLanguage returns the ids, in input order, of owners of
// ownerType that have no translation at all in language. On failure it
// returns nil.
func (s *Service) OwnersMissingLanguage(ctx context.Context, ownerType string, ids []int64, language string) []int64 {
	ref := model.OwnerRef{Type: ownerType}
	language = NormalizeLanguage(language)
	lang, err := s.languageLookup(ctx, language)()
	if err != nil {
		if errors.Is(err, ErrLanguageNotFound) {
			return append([]int64(nil), ids...)
		}
		s.report("owners missing language", ref, "", language, err)
		return nil
	}

	with, err := s.translations.OwnersWithLanguage(ctx, ownerType, ids, lang.ID)
	if err != nil {
		s.report("owners missing language", ref, "", language, &StorageError{Op: "list owners with language", Err: err})
		return nil
	}
	has := make(map[int64]bool, len(with))
	for _, id := range with {
		has[id] = true
	}
	missing := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !has[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// DeleteLanguage removes the language with code, every translation stored in
// it and the cache entries of those translations. Entries are dropped before
// and after the rows so a concurrent read cannot keep a deleted variant alive.
func (s *Service) DeleteLanguage(ctx context.Context, code string) error {
	code = NormalizeLanguage(code)
	lang, err := s.languageLookup(ctx, code)()
	if err != nil {
		return err
	}

	var keys []string
	if s.cache != nil {
		fields, err := s.translations.FieldsInLanguage(ctx, lang.ID)
		if err != nil {
			return &StorageError{Op: "list fields in language", Err: err}
		}
		keys = make([]string, 0, 2*len(fields))
		for _, f := range fields {
			keys = append(keys,
				Key(s.prefix, f.Owner(), f.Field, lang.Code),
				Key(s.prefix, f.Owner(), f.Field, AllLanguages),
			)
		}
		if err := s.forget(ctx, keys...); err != nil {
			return err
		}
	}

	if err := s.languages.DeleteByCode(ctx, lang.Code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLanguageNotFound
		}
		return &StorageError{Op: "delete language", Err: err}
	}
	if err := s.forget(ctx, keys...); err != nil {
		s.logger.Warn("translation cache invalidation after language delete failed",
			zap.String("language", lang.Code),
			zap.Error(err),
		)
	}

	s.logger.Info("language deleted",
		zap.String("language", lang.Code),
		zap.Int("cache_keys", len(keys)),
	)
	return nil
}

func reservedLanguage(code string) bool {
	return strings.EqualFold(code, AllLanguages)
}

// languageLookup returns a memoised resolver for code so batches hit the
// languages table at most once, and not at all when every field is cached.
func (s *Service) languageLookup(ctx context.Context, code string) func() (*model.Language, error) {
	var (
		done bool
		lang *model.Language
		err  error
	)
	return func() (*model.Language, error) {
		if done {
			return lang, err
		}
		done = true
		if reservedLanguage(code) {
			err = ErrLanguageNotFound
			return nil, err
		}
		lang, err = s.languages.GetByCode(ctx, code)
		if err != nil {
			err = &StorageError{Op: "find language", Err: err}
			return nil, err
		}
		if lang == nil {
			err = ErrLanguageNotFound
		}
		return lang, err
	}
}

func (s *Service) fetchTranslation(ctx context.Context, lookup func() (*model.Language, error), field string) (string, bool, error) {
	lang, err := lookup()
	if err != nil {
		return "", false, err
	}
	row, err := s.translations.Find(ctx, s.owner, field, lang.ID)
	if err != nil {
		return "", false, &StorageError{Op: "find translation", Err: err}
	}
	if row == nil {
		return "", false, nil
	}
	return row.Translation, true, nil
}

func (s *Service) fetchAllTranslations(ctx context.Context, field string) (string, bool, error) {
	rows, err := s.translations.ListByField(ctx, s.owner, field)
	if err != nil {
		return "", false, &StorageError{Op: "list translations by field", Err: err}
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	variants := make(map[string]string, len(rows))
	for _, row := range rows {
		variants[row.LanguageCode] = row.Translation
	}
	encoded, err := json.Marshal(variants)
	if err != nil {
		return "", false, &StorageError{Op: "encode translations", Err: err}
	}
	return string(encoded), true, nil
}

// storeTranslation invalidates the field's cache entries, then upserts the row.
// A failed invalidation aborts the write so a stale entry cannot outlive it.
func (s *Service) storeTranslation(ctx context.Context, owner model.OwnerRef, field string, lang *model.Language, value string) error {
	keys := []string{
		Key(s.prefix, owner, field, lang.Code),
		Key(s.prefix, owner, field, AllLanguages),
	}
	if err := s.forget(ctx, keys...); err != nil {
		return err
	}
	if err := s.translations.Upsert(ctx, owner, field, lang.ID, value); err != nil {
		return &StorageError{Op: "upsert translation", Err: err}
	}
	// A reader may have refilled the entry between the first delete and the upsert.
	if err := s.forget(ctx, keys...); err != nil {
		s.logger.Warn("translation cache invalidation after write failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return nil
}

// remember is cache-aside: a hit is returned as is, a miss runs produce and
// caches what it found. Cache faults degrade to a direct read.
func (s *Service) remember(ctx context.Context, key string, produce func() (string, bool, error)) (string, bool, error) {
	if s.cache == nil {
		return produce()
	}

	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("translation cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		return value, true, nil
	}

	value, found, err = produce()
	if err != nil || !found {
		return value, found, err
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("translation cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, true, nil
}

func (s *Service) forget(ctx context.Context, keys ...string) error {
	if s.cache == nil || len(keys) == 0 {
		return nil
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return &StorageError{Op: "invalidate cache", Err: err}
	}
	return nil
}

// report logs err with the owner context. A missing language is an expected
// "no data" outcome and is logged at debug level only.
func (s *Service) report(op string, owner model.OwnerRef, field, language string, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", errorKind(err)),
		zap.String("owner_type", owner.Type),
		zap.Int64("owner_id", owner.ID),
		zap.String("language", language),
		zap.Error(err),
	}
	if field != "" {
		fields = append(fields, zap.String("field", field))
	}

	switch errorKind(err) {
	case "language_not_found":
		s.logger.Debug("translation unavailable", fields...)
	case "value_missing":
		s.logger.Warn("translation write skipped", fields...)
	default:
		s.logger.Error("translation operation failed", fields...)
	}
}
