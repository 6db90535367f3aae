package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
	"github.com/mfigueroa-dev/veloway-backend/pkg/types"
)

// Notification stores in-app notification payloads scoped to a recipient user.
type Notification struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RecipientID uuid.UUID              `gorm:"column:recipient_id;type:uuid;not null;index"`
	Type        enums.NotificationType `gorm:"type:notification_type;not null"`
	Title       string                 `gorm:"type:text;not null"`
	Message     string                 `gorm:"type:text;not null"`
	OrderID     *uuid.UUID             `gorm:"column:order_id;type:uuid"`
	Metadata    types.JSONMap          `gorm:"column:metadata;type:jsonb"`
	ReadAt      *time.Time             `gorm:"type:timestamptz"`
	CreatedAt   time.Time              `gorm:"type:timestamptz;default:now()"`
}
