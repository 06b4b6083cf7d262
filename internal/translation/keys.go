package translation

import (
	"strconv"

	"github.com/alexivanou/field-translations/internal/model"
)

// AllLanguages is the language segment of the key caching every variant of a field.
const AllLanguages = "all"

// Key returns the cache key of one owner field in one language (or AllLanguages).
// The owner segment keeps records of the same type from sharing entries:
//
//	prefix + "product_1_" + "name" + "_" + "es"
func Key(prefix string, owner model.OwnerRef, field, language string) string {
	return prefix + owner.Type + "_" + strconv.FormatInt(owner.ID, 10) + "_" + field + "_" + language
}
