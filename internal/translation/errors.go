package translation

import (
	"errors"
	"fmt"
)

var (
	// ErrLanguageNotFound means the language code has no row. Reads treat it as "no data".
	ErrLanguageNotFound = errors.New("language not found")
	// ErrOwnerMissing means no owner type/id is bound or passed for the operation.
	ErrOwnerMissing = errors.New("owner type or id missing")
	// ErrValueMissing means a batch write listed a field without a value for it.
	ErrValueMissing = errors.New("no value supplied for field")
	// ErrInvalidLanguageCode means a language code is not a usable BCP 47 tag.
	ErrInvalidLanguageCode = errors.New("invalid language code")
)

// StorageError wraps a repository or cache failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// errorKind classifies err for diagnostics.
func errorKind(err error) string {
	var storageErr *StorageError
	switch {
	case errors.Is(err, ErrLanguageNotFound):
		return "language_not_found"
	case errors.Is(err, ErrOwnerMissing):
		return "owner_missing"
	case errors.Is(err, ErrValueMissing):
		return "value_missing"
	case errors.As(err, &storageErr):
		return "storage"
	default:
		return "unknown"
	}
}
