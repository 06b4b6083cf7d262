package repository

import (
	"fmt"

	"github.com/alexivanou/field-translations/internal/config"
)

// queries holds every statement with table and column names resolved from
// config.SchemaConfig. Placeholders are written as '?' and rebound to the
// driver's bind style by sqlx.
type queries struct {
	languageByCode     string
	languageByID       string
	languageList       string
	languageInsert     string
	languageUpsert     string
	languageDelete     string
	languageDeleteRefs string

	countryBySlug string
	countryList   string
	countryInsert string
	countryUpsert string

	translationFind        string
	translationUpsert      string
	translationByField     string
	translationByLanguage  string
	translationFieldsIn    string
	translationDeleteOwner string
	translationCountOwner  string
	translationOwnersWith  string
}

func buildQueries(s config.SchemaConfig) queries {
	lc := s.LanguageColumns
	tc := s.TranslationColumns
	lt := s.LanguagesTable
	tt := s.TranslationsTable
	ct := s.CountriesTable

	languageSelect := fmt.Sprintf(
		`SELECT l.%s AS id, l.%s AS name, l.slug, l.%s AS code, l.country_id, l.rtl, l.created_at, l.updated_at FROM %s l`,
		lc.ID, lc.Name, lc.Code, lt,
	)
	countrySelect := fmt.Sprintf(
		`SELECT id, name, slug, flag, time_zone, currency_code, created_at, updated_at FROM %s`, ct,
	)
	translationSelect := fmt.Sprintf(
		`SELECT t.%s AS id, t.%s AS model_type, t.%s AS model_id, t.%s AS language_id, t.%s AS field, t.%s AS translation, t.created_at, t.updated_at FROM %s t`,
		tc.ID, tc.ModelType, tc.ModelID, tc.LanguageID, tc.Field, tc.Translation, tt,
	)
	localizedSelect := fmt.Sprintf(
		`SELECT t.%s AS field, l.%s AS language_code, t.%s AS translation FROM %s t JOIN %s l ON l.%s = t.%s`,
		tc.Field, lc.Code, tc.Translation, tt, lt, lc.ID, tc.LanguageID,
	)

	return queries{
		languageByCode: languageSelect + fmt.Sprintf(` WHERE l.%s = ?`, lc.Code),
		languageByID:   languageSelect + fmt.Sprintf(` WHERE l.%s = ?`, lc.ID),
		languageList:   languageSelect + fmt.Sprintf(` ORDER BY l.%s`, lc.Code),
		languageInsert: fmt.Sprintf(
			`INSERT INTO %s (%s, slug, %s, country_id, rtl) VALUES (?, ?, ?, ?, ?) RETURNING %s`,
			lt, lc.Name, lc.Code, lc.ID,
		),
		languageUpsert: fmt.Sprintf(
			`INSERT INTO %s (%s, slug, %s, country_id, rtl) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (%s) DO UPDATE SET %s = excluded.%s, slug = excluded.slug, country_id = excluded.country_id, rtl = excluded.rtl, updated_at = CURRENT_TIMESTAMP
			 RETURNING %s`,
			lt, lc.Name, lc.Code, lc.Code, lc.Name, lc.Name, lc.ID,
		),
		languageDelete:     fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, lt, lc.ID),
		languageDeleteRefs: fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, tt, tc.LanguageID),

		countryBySlug: countrySelect + ` WHERE slug = ?`,
		countryList:   countrySelect + ` ORDER BY name`,
		countryInsert: fmt.Sprintf(
			`INSERT INTO %s (name, slug, flag, time_zone, currency_code) VALUES (?, ?, ?, ?, ?) RETURNING id`, ct,
		),
		countryUpsert: fmt.Sprintf(
			`INSERT INTO %s (name, slug, flag, time_zone, currency_code) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (slug) DO UPDATE SET name = excluded.name, flag = excluded.flag, time_zone = excluded.time_zone, currency_code = excluded.currency_code, updated_at = CURRENT_TIMESTAMP
			 RETURNING id`,
			ct,
		),

		translationFind: translationSelect + fmt.Sprintf(
			` WHERE t.%s = ? AND t.%s = ? AND t.%s = ? AND t.%s = ?`,
			tc.ModelType, tc.ModelID, tc.Field, tc.LanguageID,
		),
		translationUpsert: fmt.Sprintf(
			`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (%s, %s, %s, %s) DO UPDATE SET %s = excluded.%s, updated_at = CURRENT_TIMESTAMP`,
			tt, tc.ModelType, tc.ModelID, tc.Field, tc.LanguageID, tc.Translation,
			tc.ModelType, tc.ModelID, tc.Field, tc.LanguageID, tc.Translation, tc.Translation,
		),
		translationByField: localizedSelect + fmt.Sprintf(
			` WHERE t.%s = ? AND t.%s = ? AND t.%s = ? ORDER BY l.%s`,
			tc.ModelType, tc.ModelID, tc.Field, lc.Code,
		),
		translationByLanguage: localizedSelect + fmt.Sprintf(
			` WHERE t.%s = ? AND t.%s = ? AND t.%s = ? ORDER BY t.%s`,
			tc.ModelType, tc.ModelID, tc.LanguageID, tc.Field,
		),
		translationFieldsIn: fmt.Sprintf(
			`SELECT %s AS model_type, %s AS model_id, %s AS field FROM %s WHERE %s = ? ORDER BY %s, %s, %s`,
			tc.ModelType, tc.ModelID, tc.Field, tt, tc.LanguageID, tc.ModelType, tc.ModelID, tc.Field,
		),
		translationDeleteOwner: fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s = ?`, tt, tc.ModelType, tc.ModelID),
		translationCountOwner:  fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ? AND %s = ?`, tt, tc.ModelType, tc.ModelID),
		translationOwnersWith: fmt.Sprintf(
			`SELECT DISTINCT %s FROM %s WHERE %s = ? AND %s = ? AND %s IN (?)`,
			tc.ModelID, tt, tc.ModelType, tc.LanguageID, tc.ModelID,
		),
	}
}
