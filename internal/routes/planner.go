package routes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
	pkgerrors "github.com/mfigueroa-dev/veloway-backend/pkg/errors"
)

// PlannedStop is one waypoint produced by the planner, not yet persisted.
// Exactly one of OrderID/WarehouseID is set.
type PlannedStop struct {
	Address       string
	Latitude      float64
	Longitude     float64
	IsPickup      bool
	SequenceOrder int
	OrderID       *uuid.UUID
	WarehouseID   *uuid.UUID
}

// Plan is the planner output the caller persists as one write.
type Plan struct {
	Stops         []PlannedStop
	ToWarehouseID *uuid.UUID
}

// WarehouseDirectory resolves warehouses during intercity planning.
type WarehouseDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	FindFirstExcluding(ctx context.Context, excludeID uuid.UUID) (*models.Warehouse, error)
}

// Planner converts a batch and its member orders into an ordered stop list.
// Stop ordering follows batch input order; distance plays no part in it.
type Planner struct {
	warehouses WarehouseDirectory
}

// NewPlanner builds a stop planner.
func NewPlanner(warehouses WarehouseDirectory) (*Planner, error) {
	if warehouses == nil {
		return nil, fmt.Errorf("warehouse directory required")
	}
	return &Planner{warehouses: warehouses}, nil
}

// PlanStops produces the ordered stop list for one batch. It reads the
// warehouse directory for intercity destination resolution but writes
// nothing.
func (p *Planner) PlanStops(ctx context.Context, batch models.Batch, warehouse models.Warehouse, orders []models.Order) (*Plan, error) {
	switch batch.Type {
	case enums.BatchTypeLocalPickup, enums.BatchTypeLocalSellersWarehouse:
		return p.planPickupsToWarehouse(warehouse, orders), nil
	case enums.BatchTypeLocalWarehouseBuyers:
		return p.planWarehouseToBuyers(warehouse, orders), nil
	case enums.BatchTypeIntercity:
		return p.planIntercity(ctx, warehouse, orders)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported batch type %q", batch.Type))
	}
}

// planPickupsToWarehouse emits one pickup per order followed by a final drop
// at the source warehouse.
func (p *Planner) planPickupsToWarehouse(warehouse models.Warehouse, orders []models.Order) *Plan {
	stops := make([]PlannedStop, 0, len(orders)+1)
	for i := range orders {
		order := orders[i]
		stops = append(stops, PlannedStop{
			Address:       pickupAddress(order),
			Latitude:      deref(order.PickupLatitude),
			Longitude:     deref(order.PickupLongitude),
			IsPickup:      true,
			SequenceOrder: i,
			OrderID:       &orders[i].ID,
		})
	}
	stops = append(stops, warehouseStop(warehouse, len(orders), false))
	return &Plan{Stops: stops}
}

// planWarehouseToBuyers emits a warehouse pickup first, then one delivery per
// order.
func (p *Planner) planWarehouseToBuyers(warehouse models.Warehouse, orders []models.Order) *Plan {
	stops := make([]PlannedStop, 0, len(orders)+1)
	stops = append(stops, warehouseStop(warehouse, 0, true))
	for i := range orders {
		order := orders[i]
		stops = append(stops, PlannedStop{
			Address:       order.Address,
			Latitude:      deref(order.DropLatitude),
			Longitude:     deref(order.DropLongitude),
			IsPickup:      false,
			SequenceOrder: i + 1,
			OrderID:       &orders[i].ID,
		})
	}
	return &Plan{Stops: stops}
}

// planIntercity emits exactly two warehouse stops. The destination comes from
// the first order carrying a secondary warehouse id, falling back to any
// other warehouse in the directory.
func (p *Planner) planIntercity(ctx context.Context, warehouse models.Warehouse, orders []models.Order) (*Plan, error) {
	destination, err := p.resolveDestination(ctx, warehouse, orders)
	if err != nil {
		return nil, err
	}

	stops := []PlannedStop{
		warehouseStop(warehouse, 0, true),
		warehouseStop(*destination, 1, false),
	}
	return &Plan{Stops: stops, ToWarehouseID: &destination.ID}, nil
}

func (p *Planner) resolveDestination(ctx context.Context, source models.Warehouse, orders []models.Order) (*models.Warehouse, error) {
	for _, order := range orders {
		if order.SecondaryWarehouseID == nil {
			continue
		}
		destination, err := p.warehouses.FindByID(ctx, *order.SecondaryWarehouseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "destination warehouse not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load destination warehouse")
		}
		return destination, nil
	}

	destination, err := p.warehouses.FindFirstExcluding(ctx, source.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "no destination warehouse available for intercity transfer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve fallback warehouse")
	}
	return destination, nil
}

func warehouseStop(warehouse models.Warehouse, sequence int, isPickup bool) PlannedStop {
	id := warehouse.ID
	return PlannedStop{
		Address:       warehouse.Address,
		Latitude:      warehouse.Latitude,
		Longitude:     warehouse.Longitude,
		IsPickup:      isPickup,
		SequenceOrder: sequence,
		WarehouseID:   &id,
	}
}

func pickupAddress(order models.Order) string {
	if order.PickupAddress != nil && *order.PickupAddress != "" {
		return *order.PickupAddress
	}
	return order.Address
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
