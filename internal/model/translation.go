package model

import "time"

// Translation is one translated value of one field of one owner record
type Translation struct {
	ID          int64     `db:"id"`
	ModelType   string    `db:"model_type"`
	ModelID     int64     `db:"model_id"`
	LanguageID  int64     `db:"language_id"`
	Field       string    `db:"field"`
	Translation string    `db:"translation"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// LocalizedTranslation is a translation joined with its language code
type LocalizedTranslation struct {
	Field        string `db:"field"`
	LanguageCode string `db:"language_code"`
	Translation  string `db:"translation"`
}

// TranslatedField addresses one field of one owner record
type TranslatedField struct {
	ModelType string `db:"model_type"`
	ModelID   int64  `db:"model_id"`
	Field     string `db:"field"`
}

// Owner returns the owner reference of the field
func (f TranslatedField) Owner() OwnerRef {
	return OwnerRef{Type: f.ModelType, ID: f.ModelID}
}
