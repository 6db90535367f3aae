package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DriverEarning is one payable line recorded per delivered order.
type DriverEarning struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DriverID  uuid.UUID       `gorm:"column:driver_id;type:uuid;not null;index"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_driver_earnings_order_route"`
	RouteID   uuid.UUID       `gorm:"column:route_id;type:uuid;not null;uniqueIndex:idx_driver_earnings_order_route"`
	BatchID   uuid.UUID       `gorm:"column:batch_id;type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency  string          `gorm:"column:currency;type:text;not null;default:'USD'"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
