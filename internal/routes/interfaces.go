package routes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

// Repository defines persistence operations for routes and their stops.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRoute(ctx context.Context, route *models.DeliveryRoute) (*models.DeliveryRoute, error)
	FindRouteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error)
	FindRouteByBatchID(ctx context.Context, batchID uuid.UUID) (*models.DeliveryRoute, error)
	FindRoutesByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error)
	FindRoutesByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error)
	FindAvailableRoutes(ctx context.Context) ([]models.DeliveryRoute, error)
	FindActiveRouteByDriver(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error)
	UpdateRoute(ctx context.Context, id uuid.UUID, updates map[string]any) error
	FindStopByID(ctx context.Context, id uuid.UUID) (*models.RouteStop, error)
	FindStopsByRoute(ctx context.Context, routeID uuid.UUID) ([]models.RouteStop, error)
	UpdateStop(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// BatchStore is the slice of batch persistence the route engine needs.
type BatchStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	FindCollectingWithoutRoute(ctx context.Context) ([]models.Batch, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// DriverDirectory resolves driver profiles and availability.
type DriverDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DriverStatus) error
	FindAdminUsers(ctx context.Context) ([]models.User, error)
}

// OrderStore mutates order statuses as stops complete.
type OrderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}
