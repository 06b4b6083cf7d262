package translation

import (
	"context"
	"sync"

	"github.com/alexivanou/field-translations/internal/model"
)

// Translatable gives an owner record access to its translations, limited to
// a whitelist of fields. Owner types embed or hold one:
//
//	type Product struct {
//		ID           int64
//		Translations *translation.Translatable
//	}
//
// Fields outside the whitelist never reach the Service: reads return nothing
// and writes return false.
type Translatable struct {
	service         *Service
	owner           model.Owner
	fields          []string
	allowed         map[string]struct{}
	defaultLanguage string

	mu    sync.Mutex
	bound *Service
}

// NewTranslatable attaches the capability to owner. An empty language passed
// to any method falls back to defaultLanguage.
func NewTranslatable(svc *Service, owner model.Owner, fields []string, defaultLanguage string) *Translatable {
	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}
	return &Translatable{
		service:         svc,
		owner:           owner,
		fields:          append([]string(nil), fields...),
		allowed:         allowed,
		defaultLanguage: defaultLanguage,
	}
}

// Fields returns the whitelist in declaration order.
func (t *Translatable) Fields() []string {
	return append([]string(nil), t.fields...)
}

// IsTranslatable reports whether field is whitelisted.
func (t *Translatable) IsTranslatable(field string) bool {
	_, ok := t.allowed[field]
	return ok
}

func (t *Translatable) allTranslatable(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !t.IsTranslatable(f) {
			return false
		}
	}
	return true
}

// translator binds the service on first use. The owner may not have an id
// yet when the capability is attached, so an invalid binding is retried.
func (t *Translatable) translator() *Service {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bound == nil || !t.bound.Owner().Valid() {
		t.bound = t.service.Bind(t.owner)
	}
	return t.bound
}

func (t *Translatable) language(language string) string {
	if language == "" {
		return t.defaultLanguage
	}
	return language
}

func (t *Translatable) GetTranslation(ctx context.Context, field, language string) (string, bool) {
	if !t.IsTranslatable(field) {
		return "", false
	}
	return t.translator().GetTranslation(ctx, field, t.language(language))
}

// GetTranslationBatch returns nil for every field outside the whitelist and
// resolves the others.
func (t *Translatable) GetTranslationBatch(ctx context.Context, fields []string, language string) map[string]*string {
	result := make(map[string]*string, len(fields))
	var allowed []string
	for _, f := range fields {
		result[f] = nil
		if t.IsTranslatable(f) {
			allowed = append(allowed, f)
		}
	}
	if len(allowed) == 0 {
		return result
	}
	for f, v := range t.translator().GetTranslationBatch(ctx, allowed, t.language(language)) {
		result[f] = v
	}
	return result
}

// SetTranslation writes for this owner regardless of what the service was bound to.
func (t *Translatable) SetTranslation(ctx context.Context, field, language, value string) bool {
	if !t.IsTranslatable(field) {
		return false
	}
	return t.translator().SetTranslation(ctx, field, t.language(language), value, WithOwner(t.owner))
}

// SetTranslationBatch writes nothing if any field is outside the whitelist.
func (t *Translatable) SetTranslationBatch(ctx context.Context, fields []string, language string, values map[string]string) bool {
	if !t.allTranslatable(fields) {
		return false
	}
	return t.translator().SetTranslationBatch(ctx, fields, t.language(language), values, WithOwner(t.owner))
}

func (t *Translatable) GetTranslations(ctx context.Context, field string) map[string]string {
	if !t.IsTranslatable(field) {
		return map[string]string{}
	}
	return t.translator().GetTranslations(ctx, field)
}

func (t *Translatable) HasTranslation(ctx context.Context, field, language string) bool {
	if !t.IsTranslatable(field) {
		return false
	}
	return t.translator().HasTranslation(ctx, field, t.language(language))
}

func (t *Translatable) HasTranslationBatch(ctx context.Context, fields []string, language string) bool {
	if !t.allTranslatable(fields) {
		return false
	}
	return t.translator().HasTranslationBatch(ctx, fields, t.language(language))
}

// GetTranslationsForLanguage returns every whitelisted field in language;
// fields without a translation map to nil.
func (t *Translatable) GetTranslationsForLanguage(ctx context.Context, language string) map[string]*string {
	return t.GetTranslationBatch(ctx, t.fields, language)
}

// GetAllTranslations returns field -> language code -> text for the whole whitelist.
func (t *Translatable) GetAllTranslations(ctx context.Context) map[string]map[string]string {
	if len(t.fields) == 0 {
		return map[string]map[string]string{}
	}
	return t.translator().GetTranslationsBatch(ctx, t.fields)
}

// FillTranslations writes the whitelisted fields present in values and
// ignores everything else. It reports false if any write failed.
func (t *Translatable) FillTranslations(ctx context.Context, language string, values map[string]string) bool {
	var fields []string
	for _, f := range t.fields {
		if _, ok := values[f]; ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return true
	}
	return t.translator().SetTranslationBatch(ctx, fields, t.language(language), values, WithOwner(t.owner))
}

// Delete removes all translations of the owner. Call it when the owner record is deleted.
func (t *Translatable) Delete(ctx context.Context) bool {
	return t.translator().DeleteTranslations(ctx, t.fields)
}
