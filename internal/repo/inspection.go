package repo

import (
	"context"
	"errors"

	"roadworthy/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound возвращается, когда запрошенной строки нет в БД.
var ErrNotFound = errors.New("not found")

// InspectionRepository — контракт доступа к Inspection для слоя сервиса.
type InspectionRepository interface {
	// GetByID returns one inspection or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Inspection, error)

	// GetByRoadworthyNumber returns the first inspection with the given
	// business number, or ErrNotFound.
	GetByRoadworthyNumber(ctx context.Context, number string) (*model.Inspection, error)

	// ListAll returns every inspection ordered by last update, oldest first.
	ListAll(ctx context.Context) ([]model.Inspection, error)

	// ListInProgress returns in-progress inspections, oldest update first.
	ListInProgress(ctx context.Context) ([]model.Inspection, error)

	// ListCompleted returns pass/fail inspections, newest update first.
	ListCompleted(ctx context.Context) ([]model.Inspection, error)

	// Create inserts a new inspection row.
	Create(ctx context.Context, insp *model.Inspection) error

	// Save writes the full row back, refreshing UpdatedAt.
	Save(ctx context.Context, insp *model.Inspection) error

	// Delete removes one row; ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

type inspectionRepo struct {
	db *gorm.DB
}

// NewInspectionRepository создаёт gorm-реализацию репозитория.
func NewInspectionRepository(db *gorm.DB) InspectionRepository {
	return &inspectionRepo{db: db}
}

func (r *inspectionRepo) GetByID(ctx context.Context, id string) (*model.Inspection, error) {
	var insp model.Inspection
	err := r.db.WithContext(ctx).First(&insp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

func (r *inspectionRepo) GetByRoadworthyNumber(ctx context.Context, number string) (*model.Inspection, error) {
	var insp model.Inspection
	err := r.db.WithContext(ctx).First(&insp, "roadworthy_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

func (r *inspectionRepo) ListAll(ctx context.Context) ([]model.Inspection, error) {
	var list []model.Inspection
	err := r.db.WithContext(ctx).Order("updated_at asc").Find(&list).Error
	return list, err
}

func (r *inspectionRepo) ListInProgress(ctx context.Context) ([]model.Inspection, error) {
	var list []model.Inspection
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusInProgress).
		Order("updated_at asc").
		Find(&list).Error
	return list, err
}

func (r *inspectionRepo) ListCompleted(ctx context.Context) ([]model.Inspection, error) {
	var list []model.Inspection
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{model.StatusPass, model.StatusFail}).
		Order("updated_at desc").
		Find(&list).Error
	return list, err
}

func (r *inspectionRepo) Create(ctx context.Context, insp *model.Inspection) error {
	return r.db.WithContext(ctx).Create(insp).Error
}

func (r *inspectionRepo) Save(ctx context.Context, insp *model.Inspection) error {
	return r.db.WithContext(ctx).Save(insp).Error
}

func (r *inspectionRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Inspection{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
