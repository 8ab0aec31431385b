package repo

import (
	"context"
	"errors"

	"roadworthy/internal/model"

	"gorm.io/gorm"
)

// SettingsRepository — доступ к единственной строке настроек.
type SettingsRepository interface {
	// Get returns the singleton settings row, or ErrNotFound when the seed
	// has not run (should not happen after InitDB).
	Get(ctx context.Context) (*model.Settings, error)

	// Save writes the row back, refreshing UpdatedAt.
	Save(ctx context.Context, s *model.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository создаёт gorm-реализацию репозитория настроек.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s *model.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
