package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/jmoiron/sqlx"
)

type translationRepository struct {
	db *sqlx.DB
	q  queries
}

func (r *translationRepository) Find(ctx context.Context, owner model.OwnerRef, field string, languageID int64) (*model.Translation, error) {
	var t model.Translation
	err := r.db.GetContext(ctx, &t, r.db.Rebind(r.q.translationFind), owner.Type, owner.ID, field, languageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Upsert writes the value keyed by (owner type, owner id, field, language).
// It relies on the unique index over that key.
func (r *translationRepository) Upsert(ctx context.Context, owner model.OwnerRef, field string, languageID int64, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(r.q.translationUpsert), owner.Type, owner.ID, field, languageID, value)
	return err
}

func (r *translationRepository) ListByField(ctx context.Context, owner model.OwnerRef, field string) ([]model.LocalizedTranslation, error) {
	var rows []model.LocalizedTranslation
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(r.q.translationByField), owner.Type, owner.ID, field); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepository) ListByLanguage(ctx context.Context, owner model.OwnerRef, languageID int64) ([]model.LocalizedTranslation, error) {
	var rows []model.LocalizedTranslation
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(r.q.translationByLanguage), owner.Type, owner.ID, languageID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepository) FieldsInLanguage(ctx context.Context, languageID int64) ([]model.TranslatedField, error) {
	var fields []model.TranslatedField
	if err := r.db.SelectContext(ctx, &fields, r.db.Rebind(r.q.translationFieldsIn), languageID); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *translationRepository) DeleteByOwner(ctx context.Context, owner model.OwnerRef) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(r.q.translationDeleteOwner), owner.Type, owner.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *translationRepository) CountByOwner(ctx context.Context, owner model.OwnerRef) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(r.q.translationCountOwner), owner.Type, owner.ID); err != nil {
		return 0, err
	}
	return count, nil
}

// OwnersWithLanguage returns the subset of ids that have at least one
// translation in the given language.
func (r *translationRepository) OwnersWithLanguage(ctx context.Context, ownerType string, ids []int64, languageID int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(r.q.translationOwnersWith, ownerType, languageID, ids)
	if err != nil {
		return nil, err
	}
	var found []int64
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return found, nil
}
