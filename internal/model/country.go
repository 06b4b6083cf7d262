package model

import "time"

// Country groups languages. It is optional and mostly kept for seed data.
type Country struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	Flag         *string   `db:"flag" json:"flag"`
	TimeZone     string    `db:"time_zone" json:"time_zone"`
	CurrencyCode string    `db:"currency_code" json:"currency_code"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
