package earnings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
)

// Repository defines persistence operations for driver earnings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, earning *models.DriverEarning) error
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DriverEarning, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an earnings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, earning *models.DriverEarning) error {
	return r.db.WithContext(ctx).Create(earning).Error
}

func (r *repository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DriverEarning, error) {
	var earnings []models.DriverEarning
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&earnings).Error
	if err != nil {
		return nil, err
	}
	return earnings, nil
}
