package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// MaxLanguageCodeLength bounds the code column of the languages table.
const MaxLanguageCodeLength = 10

// CanonicalLanguage validates code as a BCP 47 tag and returns its canonical
// form ("pt-br" becomes "pt-BR"). AllLanguages is reserved for cache keys and
// is rejected.
func CanonicalLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > MaxLanguageCodeLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}
	canonical := tag.String()
	if strings.EqualFold(canonical, AllLanguages) || len(canonical) > MaxLanguageCodeLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}
	return canonical, nil
}

// NormalizeLanguage is the lenient form of CanonicalLanguage used on lookups:
// a code that does not parse is returned trimmed, so it simply matches no row.
func NormalizeLanguage(code string) string {
	if canonical, err := CanonicalLanguage(code); err == nil {
		return canonical
	}
	return strings.TrimSpace(code)
}
