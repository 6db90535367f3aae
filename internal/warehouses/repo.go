package warehouses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
)

// Repository defines persistence operations for warehouses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	FindFirstExcluding(ctx context.Context, excludeID uuid.UUID) (*models.Warehouse, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a warehouses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// FindFirstExcluding returns the oldest active warehouse other than the given
// one. Ordering by created_at keeps fallback resolution deterministic.
func (r *repository) FindFirstExcluding(ctx context.Context, excludeID uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("id <> ? AND is_active", excludeID).
		Order("created_at ASC").
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}
