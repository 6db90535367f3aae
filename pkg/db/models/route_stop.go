package models

import (
	"time"

	"github.com/google/uuid"
)

// RouteStop is one waypoint on a delivery route. A stop references either an
// order or a warehouse, never both; sequence_order is 0-based and fixed at
// route creation.
type RouteStop struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RouteID       uuid.UUID  `gorm:"column:route_id;type:uuid;not null;index"`
	OrderID       *uuid.UUID `gorm:"column:order_id;type:uuid"`
	WarehouseID   *uuid.UUID `gorm:"column:warehouse_id;type:uuid"`
	Address       string     `gorm:"type:text;not null"`
	Latitude      float64    `gorm:"column:latitude;not null"`
	Longitude     float64    `gorm:"column:longitude;not null"`
	IsPickup      bool       `gorm:"column:is_pickup;not null"`
	IsCompleted   bool       `gorm:"column:is_completed;not null;default:false"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	Notes         *string    `gorm:"column:notes"`
	SequenceOrder int        `gorm:"column:sequence_order;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
