package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Order carries the status dimension the routing engine advances plus the
// coordinates the stop planner reads. Order creation itself belongs to the
// upstream marketplace flow.
type Order struct {
	ID                   uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID           uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	BatchID              *uuid.UUID        `gorm:"column:batch_id;type:uuid"`
	WarehouseID          *uuid.UUID        `gorm:"column:warehouse_id;type:uuid"`
	SecondaryWarehouseID *uuid.UUID        `gorm:"column:secondary_warehouse_id;type:uuid"`
	Status               enums.OrderStatus `gorm:"column:status;type:order_status;not null"`
	IsLocalDelivery      bool              `gorm:"column:is_local_delivery;not null;default:false"`
	Address              string            `gorm:"type:text;not null"`
	PickupAddress        *string           `gorm:"column:pickup_address"`
	PickupLatitude       *float64          `gorm:"column:pickup_latitude"`
	PickupLongitude      *float64          `gorm:"column:pickup_longitude"`
	DropLatitude         *float64          `gorm:"column:drop_latitude"`
	DropLongitude        *float64          `gorm:"column:drop_longitude"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
