package translation

import (
	"sort"
	"sync"

	"github.com/alexivanou/field-translations/internal/model"
)

// Registry maps owner type tags to their translatable field whitelists and
// hands out Translatable values for owner references.
type Registry struct {
	service         *Service
	defaultLanguage string

	mu     sync.RWMutex
	models map[string][]string
}

// NewRegistry creates a registry with the given type -> fields map.
func NewRegistry(svc *Service, defaultLanguage string, models map[string][]string) *Registry {
	r := &Registry{
		service:         svc,
		defaultLanguage: defaultLanguage,
		models:          make(map[string][]string, len(models)),
	}
	for ownerType, fields := range models {
		r.Register(ownerType, fields...)
	}
	return r
}

// Register declares the translatable fields of ownerType, replacing any earlier declaration.
func (r *Registry) Register(ownerType string, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[ownerType] = append([]string(nil), fields...)
}

// Fields returns the whitelist of ownerType.
func (r *Registry) Fields(ownerType string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.models[ownerType]
	if !ok {
		return nil, false
	}
	return append([]string(nil), fields...), true
}

// Types returns the registered owner types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.models))
	for t := range r.models {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// For returns the capability of owner, or false if its type is not registered.
func (r *Registry) For(owner model.Owner) (*Translatable, bool) {
	fields, ok := r.Fields(owner.OwnerType())
	if !ok {
		return nil, false
	}
	return NewTranslatable(r.service, owner, fields, r.defaultLanguage), true
}

// Service returns the unbound service the registry hands out.
func (r *Registry) Service() *Service {
	return r.service
}
