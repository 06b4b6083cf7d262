package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/jmoiron/sqlx"
)

type countryRepository struct {
	db *sqlx.DB
	q  queries
}

func (r *countryRepository) GetBySlug(ctx context.Context, slug string) (*model.Country, error) {
	var country model.Country
	if err := r.db.GetContext(ctx, &country, r.db.Rebind(r.q.countryBySlug), slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	if err := r.db.SelectContext(ctx, &countries, r.q.countryList); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *countryRepository) Create(ctx context.Context, country *model.Country) error {
	return r.db.GetContext(ctx, &country.ID, r.db.Rebind(r.q.countryInsert),
		country.Name, country.Slug, country.Flag, country.TimeZone, country.CurrencyCode)
}

// Upsert inserts the country or updates the row with the same slug
func (r *countryRepository) Upsert(ctx context.Context, country *model.Country) error {
	return r.db.GetContext(ctx, &country.ID, r.db.Rebind(r.q.countryUpsert),
		country.Name, country.Slug, country.Flag, country.TimeZone, country.CurrencyCode)
}
