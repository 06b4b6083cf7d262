package model

// CreateLanguageRequest is the payload for creating a language
type CreateLanguageRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	CountryID *int64 `json:"country_id,omitempty"`
	RTL       bool   `json:"rtl"`
}

// CreateCountryRequest is the payload for creating a country
type CreateCountryRequest struct {
	Name         string  `json:"name"`
	Flag         *string `json:"flag,omitempty"`
	TimeZone     string  `json:"time_zone"`
	CurrencyCode string  `json:"currency_code"`
}

// LanguagesResponse lists languages
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
	Count     int        `json:"count"`
}

// CountriesResponse lists countries
type CountriesResponse struct {
	Countries []Country `json:"countries"`
	Count     int       `json:"count"`
}

// SetTranslationRequest is the payload for writing one field translation
type SetTranslationRequest struct {
	Value string `json:"value"`
}

// FieldTranslationResponse is one field in one language.
// Value is null when no translation exists.
type FieldTranslationResponse struct {
	Owner    OwnerRef `json:"owner"`
	Field    string   `json:"field"`
	Language string   `json:"language"`
	Value    *string  `json:"value"`
}

// FieldTranslationsResponse is every language variant of one field
type FieldTranslationsResponse struct {
	Owner        OwnerRef          `json:"owner"`
	Field        string            `json:"field"`
	Translations map[string]string `json:"translations"`
}

// OwnerTranslationsResponse is every whitelisted field of an owner in one language
type OwnerTranslationsResponse struct {
	Owner        OwnerRef           `json:"owner"`
	Language     string             `json:"language"`
	Translations map[string]*string `json:"translations"`
}
