package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/internal/notifications"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
	pkgerrors "github.com/mfigueroa-dev/veloway-backend/pkg/errors"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
	"github.com/mfigueroa-dev/veloway-backend/pkg/types"
)

type notificationSender interface {
	Notify(ctx context.Context, input notifications.NotifyInput) error
}

type earningsRecorder interface {
	RecordEarning(ctx context.Context, orderID, routeID, batchID, driverID uuid.UUID) error
}

// Service is the route lifecycle engine: it turns collected batches into
// routes, hands them to drivers and cascades completion back through batch
// and orders.
type Service interface {
	SweepUnroutedBatches(ctx context.Context) (SweepResult, error)
	GetRouteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error)
	GetRoutesByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error)
	GetRoutesByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error)
	GetAvailableRoutes(ctx context.Context) ([]models.DeliveryRoute, error)
	GetActiveRouteForDriver(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error)
	AssignDriver(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error)
	UpdateStop(ctx context.Context, stopID uuid.UUID, input UpdateStopInput) (*models.RouteStop, error)
	CompleteStop(ctx context.Context, stopID uuid.UUID, notes *string) (*models.RouteStop, error)
	CompleteRoute(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error)
}

// ServiceParams wires the lifecycle engine's collaborators.
type ServiceParams struct {
	Repo      Repository
	Batches   BatchStore
	Orders    OrderStore
	Drivers   DriverDirectory
	Planner   *Planner
	Estimator Estimator
	Notifier  notificationSender
	Earnings  earningsRecorder
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	batches   BatchStore
	orders    OrderStore
	drivers   DriverDirectory
	planner   *Planner
	estimator Estimator
	notifier  notificationSender
	earnings  earningsRecorder
	logg      *logger.Logger
	now       func() time.Time
}

// NewService validates the wiring and builds the lifecycle engine.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("routes repository required")
	}
	if params.Batches == nil {
		return nil, fmt.Errorf("batch store required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	if params.Drivers == nil {
		return nil, fmt.Errorf("driver directory required")
	}
	if params.Planner == nil {
		return nil, fmt.Errorf("stop planner required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notification sender required")
	}
	if params.Earnings == nil {
		return nil, fmt.Errorf("earnings recorder required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:      params.Repo,
		batches:   params.Batches,
		orders:    params.Orders,
		drivers:   params.Drivers,
		planner:   params.Planner,
		estimator: params.Estimator,
		notifier:  params.Notifier,
		earnings:  params.Earnings,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// SweepUnroutedBatches builds a route for every collecting batch that does
// not have one yet. One bad batch never blocks the rest; its error is logged
// and the sweep moves on.
func (s *service) SweepUnroutedBatches(ctx context.Context) (SweepResult, error) {
	batches, err := s.batches.FindCollectingWithoutRoute(ctx)
	if err != nil {
		return SweepResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list unrouted batches")
	}

	result := SweepResult{Scanned: len(batches)}
	for i := range batches {
		batch := batches[i]
		created, err := s.buildRouteForBatch(ctx, batch)
		if err != nil {
			result.Failed++
			s.logg.Error(s.logg.WithField(ctx, "batch_id", batch.ID.String()), "routes.sweep.batch_failed", err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// buildRouteForBatch reports whether a new route was created. The existing-
// route check is the idempotency guard; the unique index on batch_id is the
// backstop when two sweeps race.
func (s *service) buildRouteForBatch(ctx context.Context, batch models.Batch) (bool, error) {
	if _, err := s.repo.FindRouteByBatchID(ctx, batch.ID); err == nil {
		return false, nil
	} else if err != gorm.ErrRecordNotFound {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing route")
	}

	warehouse := batch.Warehouse
	if warehouse == nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "batch has no source warehouse")
	}

	plan, err := s.planner.PlanStops(ctx, batch, *warehouse, batch.Orders)
	if err != nil {
		return false, err
	}

	now := s.now()
	route := &models.DeliveryRoute{
		BatchID:           batch.ID,
		Status:            enums.RouteStatusPending,
		TotalDistanceKm:   s.estimator.TotalDistanceKm(plan.Stops),
		EstimatedDuration: s.estimator.EstimatedDurationMinutes(len(plan.Stops), batch.Type),
		FromWarehouseID:   warehouse.ID,
		ToWarehouseID:     plan.ToWarehouseID,
		Stops:             make([]models.RouteStop, len(plan.Stops)),
	}
	for i, stop := range plan.Stops {
		route.Stops[i] = models.RouteStop{
			OrderID:       stop.OrderID,
			WarehouseID:   stop.WarehouseID,
			Address:       stop.Address,
			Latitude:      stop.Latitude,
			Longitude:     stop.Longitude,
			IsPickup:      stop.IsPickup,
			SequenceOrder: stop.SequenceOrder,
		}
	}

	if _, err := s.repo.CreateRoute(ctx, route); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create route")
	}

	err = s.batches.Update(ctx, batch.ID, map[string]any{
		"route_id":       route.ID,
		"status":         enums.BatchStatusCompleted,
		"completed_time": now,
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark batch routed")
	}
	return true, nil
}

func (s *service) GetRouteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "route id required")
	}
	route, err := s.repo.FindRouteByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "route not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load route")
	}
	return route, nil
}

func (s *service) GetRoutesByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error) {
	if driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "driver id required")
	}
	routes, err := s.repo.FindRoutesByDriver(ctx, driverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list driver routes")
	}
	return routes, nil
}

func (s *service) GetRoutesByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	routes, err := s.repo.FindRoutesByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouse routes")
	}
	return routes, nil
}

func (s *service) GetAvailableRoutes(ctx context.Context) ([]models.DeliveryRoute, error) {
	routes, err := s.repo.FindAvailableRoutes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available routes")
	}
	return routes, nil
}

func (s *service) GetActiveRouteForDriver(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "driver id required")
	}
	route, err := s.repo.FindActiveRouteByDriver(ctx, driverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active route")
	}
	return route, nil
}

// AssignDriver hands a pending route to a driver and notifies everyone
// affected. Notification failures never roll the assignment back.
func (s *service) AssignDriver(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if routeID == uuid.Nil || driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "route id and driver id required")
	}

	route, err := s.GetRouteByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.Status != enums.RouteStatusPending || route.DriverID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "route is not available for assignment")
	}

	driver, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}

	now := s.now()
	err = s.repo.UpdateRoute(ctx, route.ID, map[string]any{
		"driver_id":  driver.ID,
		"status":     enums.RouteStatusInProgress,
		"started_at": now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign route")
	}

	err = s.batches.Update(ctx, route.BatchID, map[string]any{
		"driver_id": driver.ID,
		"status":    enums.BatchStatusProcessing,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark batch processing")
	}

	if err := s.drivers.UpdateStatus(ctx, driver.ID, enums.DriverStatusOnRoute); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "driver_id", driver.ID.String()), "routes.assign.driver_status_failed", err)
	}

	s.notifyAssignment(ctx, route, driver)

	return s.GetRouteByID(ctx, routeID)
}

func (s *service) notifyAssignment(ctx context.Context, route *models.DeliveryRoute, driver *models.Driver) {
	driverName := "A driver"
	if driver.User != nil {
		driverName = driver.User.DisplayName()
	}
	meta := types.JSONMap{"route_id": route.ID.String()}

	s.sendNotification(ctx, notifications.NotifyInput{
		RecipientID: driver.UserID,
		Type:        enums.NotificationTypeRouteAssigned,
		Title:       "New route assigned",
		Message:     fmt.Sprintf("You have been assigned a route with %d stops", len(route.Stops)),
		Metadata:    meta,
	})

	admins, err := s.drivers.FindAdminUsers(ctx)
	if err != nil {
		s.logg.Error(ctx, "routes.assign.load_admins_failed", err)
	}
	for _, admin := range admins {
		s.sendNotification(ctx, notifications.NotifyInput{
			RecipientID: admin.ID,
			Type:        enums.NotificationTypeSystemAnnouncement,
			Title:       "Driver assigned to route",
			Message:     fmt.Sprintf("%s was assigned to route %s", driverName, route.ID),
			Metadata:    meta,
		})
	}

	orders, err := s.orders.FindByBatch(ctx, route.BatchID)
	if err != nil {
		s.logg.Error(ctx, "routes.assign.load_orders_failed", err)
		return
	}
	for i := range orders {
		order := orders[i]
		orderID := order.ID
		s.sendNotification(ctx, notifications.NotifyInput{
			RecipientID: order.CustomerID,
			Type:        enums.NotificationTypeOrderUpdate,
			Title:       "Your order is on its way",
			Message:     fmt.Sprintf("%s is delivering your order", driverName),
			OrderID:     &orderID,
			Metadata:    meta,
		})
	}
}

func (s *service) sendNotification(ctx context.Context, input notifications.NotifyInput) {
	if err := s.notifier.Notify(ctx, input); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "recipient_id", input.RecipientID.String()), "routes.notify_failed", err)
	}
}

// UpdateStop persists the stop mutation and, when the stop transitions to
// completed, advances the attached order and checks the whole route.
func (s *service) UpdateStop(ctx context.Context, stopID uuid.UUID, input UpdateStopInput) (*models.RouteStop, error) {
	if stopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stop id required")
	}

	stop, err := s.repo.FindStopByID(ctx, stopID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "route stop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load route stop")
	}

	updates := map[string]any{}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	nowCompleted := false
	if input.IsCompleted != nil {
		updates["is_completed"] = *input.IsCompleted
		nowCompleted = *input.IsCompleted && !stop.IsCompleted
	}
	if input.CompletedAt != nil {
		updates["completed_at"] = *input.CompletedAt
	} else if nowCompleted {
		updates["completed_at"] = s.now()
	} else if input.IsCompleted != nil && !*input.IsCompleted {
		// reopened stops must not keep a stale completion stamp
		updates["completed_at"] = nil
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateStop(ctx, stop.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update route stop")
		}
	}

	if nowCompleted {
		if stop.OrderID != nil {
			s.advanceOrder(ctx, *stop.OrderID)
		}
		if err := s.completeRouteIfDone(ctx, stop.RouteID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindStopByID(ctx, stop.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload route stop")
	}
	return updated, nil
}

// CompleteStop is a convenience wrapper that forces completion.
func (s *service) CompleteStop(ctx context.Context, stopID uuid.UUID, notes *string) (*models.RouteStop, error) {
	completed := true
	return s.UpdateStop(ctx, stopID, UpdateStopInput{IsCompleted: &completed, Notes: notes})
}

// advanceOrder applies the status progression table. Unmatched statuses are
// skipped with a warning, never failed.
func (s *service) advanceOrder(ctx context.Context, orderID uuid.UUID) {
	logCtx := s.logg.WithField(ctx, "order_id", orderID.String())

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logg.Error(logCtx, "routes.progression.load_order_failed", err)
		return
	}

	next, ok := NextOrderStatus(order.IsLocalDelivery, order.Status)
	if !ok {
		s.logg.Warn(s.logg.WithField(logCtx, "status", string(order.Status)), "routes.progression.no_rule")
		return
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, next); err != nil {
		s.logg.Error(logCtx, "routes.progression.update_failed", err)
	}
}

// completeRouteIfDone cascades completion once every stop on the route is
// done. Per-order failures are isolated so one bad order cannot strand the
// rest.
func (s *service) completeRouteIfDone(ctx context.Context, routeID uuid.UUID) error {
	stops, err := s.repo.FindStopsByRoute(ctx, routeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list route stops")
	}
	for _, stop := range stops {
		if !stop.IsCompleted {
			return nil
		}
	}

	route, err := s.repo.FindRouteByID(ctx, routeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load route")
	}
	if route.Status == enums.RouteStatusCompleted {
		return nil
	}

	now := s.now()
	err = s.repo.UpdateRoute(ctx, route.ID, map[string]any{
		"status":       enums.RouteStatusCompleted,
		"completed_at": now,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete route")
	}

	err = s.batches.Update(ctx, route.BatchID, map[string]any{
		"status":         enums.BatchStatusCompleted,
		"completed_time": now,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete batch")
	}

	s.cascadeTerminalStatuses(ctx, route)
	return nil
}

// batchType reads the type off the preloaded batch when present, falling
// back to a direct lookup.
func (s *service) batchType(ctx context.Context, route *models.DeliveryRoute) (enums.BatchType, error) {
	if route.Batch != nil {
		return route.Batch.Type, nil
	}
	batch, err := s.batches.FindByID(ctx, route.BatchID)
	if err != nil {
		return "", err
	}
	return batch.Type, nil
}

// cascadeTerminalStatuses forces the batch's orders terminal. When the batch
// type cannot be resolved the cascade is skipped rather than run with a
// guessed type.
func (s *service) cascadeTerminalStatuses(ctx context.Context, route *models.DeliveryRoute) {
	batchType, err := s.batchType(ctx, route)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "batch_id", route.BatchID.String()), "routes.cascade.load_batch_failed", err)
		return
	}
	s.forceTerminalStatuses(ctx, route.BatchID, batchType)
}

// forceTerminalStatuses pushes every non-terminal order in the batch to its
// terminal status so nothing is left stranded mid-progression.
func (s *service) forceTerminalStatuses(ctx context.Context, batchID uuid.UUID, batchType enums.BatchType) {
	orders, err := s.orders.FindByBatch(ctx, batchID)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "batch_id", batchID.String()), "routes.cascade.load_orders_failed", err)
		return
	}
	for i := range orders {
		order := orders[i]
		if order.Status.IsTerminal() {
			continue
		}
		terminal := TerminalOrderStatus(order.IsLocalDelivery, batchType)
		if err := s.orders.UpdateStatus(ctx, order.ID, terminal); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "order_id", order.ID.String()), "routes.cascade.update_failed", err)
		}
	}
}

// CompleteRoute lets the assigned driver close a route explicitly. The same
// batch-type aware cascade as the stop-driven path runs, plus one earning per
// order.
func (s *service) CompleteRoute(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if routeID == uuid.Nil || driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "route id and driver id required")
	}

	route, err := s.GetRouteByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.DriverID == nil || *route.DriverID != driverID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "route does not belong to driver")
	}

	now := s.now()
	if route.Status != enums.RouteStatusCompleted {
		err = s.repo.UpdateRoute(ctx, route.ID, map[string]any{
			"status":       enums.RouteStatusCompleted,
			"completed_at": now,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete route")
		}
		err = s.batches.Update(ctx, route.BatchID, map[string]any{
			"status":         enums.BatchStatusCompleted,
			"completed_time": now,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete batch")
		}
	}

	s.cascadeTerminalStatuses(ctx, route)

	orders, err := s.orders.FindByBatch(ctx, route.BatchID)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "batch_id", route.BatchID.String()), "routes.earnings.load_orders_failed", err)
	}
	for _, order := range orders {
		if err := s.earnings.RecordEarning(ctx, order.ID, route.ID, route.BatchID, driverID); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "order_id", order.ID.String()), "routes.earnings.record_failed", err)
		}
	}

	if err := s.drivers.UpdateStatus(ctx, driverID, enums.DriverStatusAvailable); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "driver_id", driverID.String()), "routes.complete.driver_status_failed", err)
	}

	return s.GetRouteByID(ctx, routeID)
}
