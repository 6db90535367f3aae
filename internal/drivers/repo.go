package drivers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Repository defines persistence operations for driver profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DriverStatus) error
	FindAdminUsers(ctx context.Context) ([]models.User, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a drivers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DriverStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Driver{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) FindAdminUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active", enums.UserRoleAdmin).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
