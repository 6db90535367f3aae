package earnings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfigueroa-dev/veloway-backend/pkg/config"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	pkgerrors "github.com/mfigueroa-dev/veloway-backend/pkg/errors"
)

// Service records payable earnings for delivered orders.
type Service interface {
	RecordEarning(ctx context.Context, orderID, routeID, batchID, driverID uuid.UUID) error
}

type service struct {
	repo       Repository
	baseAmount decimal.Decimal
	currency   string
}

// NewService wires the earnings dependencies. The per-delivery amount comes
// from configuration so tests can pin deterministic values.
func NewService(repo Repository, cfg config.EarningsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("earnings repository required")
	}
	amount, err := decimal.NewFromString(cfg.BaseDeliveryAmount)
	if err != nil {
		return nil, fmt.Errorf("parse base delivery amount: %w", err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("base delivery amount must not be negative")
	}
	if cfg.Currency == "" {
		return nil, fmt.Errorf("earnings currency required")
	}
	return &service{repo: repo, baseAmount: amount, currency: cfg.Currency}, nil
}

func (s *service) RecordEarning(ctx context.Context, orderID, routeID, batchID, driverID uuid.UUID) error {
	if orderID == uuid.Nil || routeID == uuid.Nil || batchID == uuid.Nil || driverID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order, route, batch and driver ids required")
	}

	earning := &models.DriverEarning{
		DriverID: driverID,
		OrderID:  orderID,
		RouteID:  routeID,
		BatchID:  batchID,
		Amount:   s.baseAmount,
		Currency: s.currency,
	}
	if err := s.repo.Create(ctx, earning); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create driver earning")
	}
	return nil
}
