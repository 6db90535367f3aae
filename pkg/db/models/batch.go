package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Batch groups orders that travel together. A batch owns at most one
// delivery route; routes back-reference it through RouteID.
type Batch struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Type          enums.BatchType   `gorm:"column:type;type:batch_type;not null"`
	Status        enums.BatchStatus `gorm:"column:status;type:batch_status;not null;default:'collecting'"`
	WarehouseID   uuid.UUID         `gorm:"column:warehouse_id;type:uuid;not null"`
	RouteID       *uuid.UUID        `gorm:"column:route_id;type:uuid"`
	DriverID      *uuid.UUID        `gorm:"column:driver_id;type:uuid"`
	CompletedTime *time.Time        `gorm:"column:completed_time"`
	Warehouse     *Warehouse        `gorm:"foreignKey:WarehouseID"`
	Orders        []Order           `gorm:"foreignKey:BatchID"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
