package model

import "time"

// Language represents a language translations can be stored in
type Language struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Code      string    `db:"code" json:"code"`
	CountryID *int64    `db:"country_id" json:"country_id"`
	RTL       bool      `db:"rtl" json:"rtl"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
