package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// DeliveryRoute is the planned traversal for one batch. The unique index on
// batch_id is the backstop against duplicate routes when two sweep ticks
// race over the same batch.
type DeliveryRoute struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BatchID           uuid.UUID         `gorm:"column:batch_id;type:uuid;not null;uniqueIndex"`
	DriverID          *uuid.UUID        `gorm:"column:driver_id;type:uuid"`
	Status            enums.RouteStatus `gorm:"column:status;type:route_status;not null;default:'pending'"`
	TotalDistanceKm   float64           `gorm:"column:total_distance_km;not null;default:0"`
	EstimatedDuration int               `gorm:"column:estimated_duration_minutes;not null;default:0"`
	FromWarehouseID   uuid.UUID         `gorm:"column:from_warehouse_id;type:uuid;not null"`
	ToWarehouseID     *uuid.UUID        `gorm:"column:to_warehouse_id;type:uuid"`
	StartedAt         *time.Time        `gorm:"column:started_at"`
	CompletedAt       *time.Time        `gorm:"column:completed_at"`
	Batch             *Batch            `gorm:"foreignKey:BatchID"`
	Driver            *Driver           `gorm:"foreignKey:DriverID"`
	FromWarehouse     *Warehouse        `gorm:"foreignKey:FromWarehouseID"`
	Stops             []RouteStop       `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
