package translation

import (
	"context"
	"errors"
	"time"

	"github.com/alexivanou/field-translations/internal/cache"
	"github.com/alexivanou/field-translations/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockLanguageRepository implements repository.LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Language), args.Error(1)
}

func (m *MockLanguageRepository) GetByID(ctx context.Context, id int64) (*model.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Language), args.Error(1)
}

func (m *MockLanguageRepository) List(ctx context.Context) ([]model.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Language), args.Error(1)
}

func (m *MockLanguageRepository) Create(ctx context.Context, language *model.Language) error {
	return m.Called(ctx, language).Error(0)
}

func (m *MockLanguageRepository) Upsert(ctx context.Context, language *model.Language) error {
	return m.Called(ctx, language).Error(0)
}

func (m *MockLanguageRepository) DeleteByCode(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

// MockTranslationRepository implements repository.TranslationRepository
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) Find(ctx context.Context, owner model.OwnerRef, field string, languageID int64) (*model.Translation, error) {
	args := m.Called(ctx, owner, field, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Translation), args.Error(1)
}

func (m *MockTranslationRepository) Upsert(ctx context.Context, owner model.OwnerRef, field string, languageID int64, value string) error {
	return m.Called(ctx, owner, field, languageID, value).Error(0)
}

func (m *MockTranslationRepository) ListByField(ctx context.Context, owner model.OwnerRef, field string) ([]model.LocalizedTranslation, error) {
	args := m.Called(ctx, owner, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LocalizedTranslation), args.Error(1)
}

func (m *MockTranslationRepository) ListByLanguage(ctx context.Context, owner model.OwnerRef, languageID int64) ([]model.LocalizedTranslation, error) {
	args := m.Called(ctx, owner, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LocalizedTranslation), args.Error(1)
}

func (m *MockTranslationRepository) FieldsInLanguage(ctx context.Context, languageID int64) ([]model.TranslatedField, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranslatedField), args.Error(1)
}

func (m *MockTranslationRepository) DeleteByOwner(ctx context.Context, owner model.OwnerRef) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTranslationRepository) CountByOwner(ctx context.Context, owner model.OwnerRef) (int, error) {
	args := m.Called(ctx, owner)
	return args.Int(0), args.Error(1)
}

func (m *MockTranslationRepository) OwnersWithLanguage(ctx context.Context, ownerType string, ids []int64, languageID int64) ([]int64, error) {
	args := m.Called(ctx, ownerType, ids, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// brokenCache fails every operation, like an unreachable Redis.
type brokenCache struct{}

var errCacheDown = errors.New("cache unavailable")

func (brokenCache) Get(_ context.Context, key string) (string, bool, error) {
	return "", false, &cache.Error{Op: "get", Key: key, Err: errCacheDown}
}

func (brokenCache) Set(_ context.Context, key, _ string, _ time.Duration) error {
	return &cache.Error{Op: "set", Key: key, Err: errCacheDown}
}

func (brokenCache) Delete(_ context.Context, keys ...string) error {
	return &cache.Error{Op: "delete", Key: keys[0], Err: errCacheDown}
}
