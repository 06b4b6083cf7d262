package translation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	owner := model.OwnerRef{Type: "product", ID: 42}

	assert.Equal(t, "field_translations_product_42_name_es", Key("field_translations_", owner, "name", "es"))
	assert.Equal(t, "field_translations_product_42_name_all", Key("field_translations_", owner, "name", AllLanguages))
	assert.Equal(t, "page_1_title_fr", Key("", model.OwnerRef{Type: "page", ID: 1}, "title", "fr"))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{ErrLanguageNotFound, "language_not_found"},
		{fmt.Errorf("lookup: %w", ErrLanguageNotFound), "language_not_found"},
		{ErrOwnerMissing, "owner_missing"},
		{ErrValueMissing, "value_missing"},
		{&StorageError{Op: "find translation", Err: errors.New("boom")}, "storage"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, errorKind(tt.err), tt.err.Error())
	}

	storageErr := &StorageError{Op: "upsert translation", Err: errCacheDown}
	assert.Equal(t, "upsert translation: cache unavailable", storageErr.Error())
	assert.ErrorIs(t, storageErr, errCacheDown)
}
