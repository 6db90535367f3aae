package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Driver is the courier profile linked to a user account.
type Driver struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Status       enums.DriverStatus `gorm:"column:status;type:driver_status;not null;default:'offline'"`
	VehicleType  *string            `gorm:"column:vehicle_type"`
	VehiclePlate *string            `gorm:"column:vehicle_plate"`
	User         *User              `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
