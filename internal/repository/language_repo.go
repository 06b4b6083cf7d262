package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/jmoiron/sqlx"
)

type languageRepository struct {
	db *sqlx.DB
	q  queries
}

func (r *languageRepository) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	var language model.Language
	if err := r.db.GetContext(ctx, &language, r.db.Rebind(r.q.languageByCode), code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) GetByID(ctx context.Context, id int64) (*model.Language, error) {
	var language model.Language
	if err := r.db.GetContext(ctx, &language, r.db.Rebind(r.q.languageByID), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) List(ctx context.Context) ([]model.Language, error) {
	var languages []model.Language
	if err := r.db.SelectContext(ctx, &languages, r.q.languageList); err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *languageRepository) Create(ctx context.Context, language *model.Language) error {
	return r.db.GetContext(ctx, &language.ID, r.db.Rebind(r.q.languageInsert),
		language.Name, language.Slug, language.Code, language.CountryID, language.RTL)
}

// Upsert inserts the language or updates the row with the same code
func (r *languageRepository) Upsert(ctx context.Context, language *model.Language) error {
	return r.db.GetContext(ctx, &language.ID, r.db.Rebind(r.q.languageUpsert),
		language.Name, language.Slug, language.Code, language.CountryID, language.RTL)
}

// DeleteByCode removes the language and every translation stored in it.
// Translations are deleted explicitly in the same transaction so the cascade
// also holds for schemas created without the foreign key.
func (r *languageRepository) DeleteByCode(ctx context.Context, code string) error {
	language, err := r.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if language == nil {
		return ErrNotFound
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(r.q.languageDeleteRefs), language.ID); err != nil {
		return fmt.Errorf("failed to delete translations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(r.q.languageDelete), language.ID); err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	return tx.Commit()
}
