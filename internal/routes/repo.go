package routes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a routes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRoute(ctx context.Context, route *models.DeliveryRoute) (*models.DeliveryRoute, error) {
	if err := r.db.WithContext(ctx).Create(route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

func (r *repository) FindRouteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error) {
	var route models.DeliveryRoute
	err := r.routeGraph(ctx).
		Where("id = ?", id).
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) FindRouteByBatchID(ctx context.Context, batchID uuid.UUID) (*models.DeliveryRoute, error) {
	var route models.DeliveryRoute
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) FindRoutesByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error) {
	var routes []models.DeliveryRoute
	err := r.routeGraph(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// FindRoutesByWarehouse matches the warehouse on either end of the route.
func (r *repository) FindRoutesByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error) {
	var routes []models.DeliveryRoute
	err := r.routeGraph(ctx).
		Where("from_warehouse_id = ? OR to_warehouse_id = ?", warehouseID, warehouseID).
		Order("created_at DESC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *repository) FindAvailableRoutes(ctx context.Context) ([]models.DeliveryRoute, error) {
	var routes []models.DeliveryRoute
	err := r.routeGraph(ctx).
		Where("status = ? AND driver_id IS NULL", enums.RouteStatusPending).
		Order("created_at DESC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// FindActiveRouteByDriver returns nil without error when the driver has no
// route in progress.
func (r *repository) FindActiveRouteByDriver(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	var route models.DeliveryRoute
	err := r.routeGraph(ctx).
		Where("driver_id = ? AND status = ?", driverID, enums.RouteStatusInProgress).
		First(&route).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

func (r *repository) UpdateRoute(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.DeliveryRoute{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindStopByID(ctx context.Context, id uuid.UUID) (*models.RouteStop, error) {
	var stop models.RouteStop
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&stop).Error
	if err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *repository) FindStopsByRoute(ctx context.Context, routeID uuid.UUID) ([]models.RouteStop, error) {
	var stops []models.RouteStop
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("sequence_order ASC").
		Find(&stops).Error
	if err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *repository) UpdateStop(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.RouteStop{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) routeGraph(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Preload("Batch.Orders").
		Preload("Driver.User").
		Preload("FromWarehouse")
}
