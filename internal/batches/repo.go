package batches

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Repository defines persistence operations for batches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	FindCollectingWithoutRoute(ctx context.Context) ([]models.Batch, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a batches repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Preload("Warehouse").
		Where("id = ?", id).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repository) FindCollectingWithoutRoute(ctx context.Context) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Preload("Warehouse").
		Where("status = ? AND route_id IS NULL", enums.BatchStatusCollecting).
		Order("created_at ASC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(updates).Error
}
