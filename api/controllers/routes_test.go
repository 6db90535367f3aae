package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/internal/routes"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db/models"
	pkgerrors "github.com/mfigueroa-dev/veloway-backend/pkg/errors"
)

type testRoutesService struct {
	sweepFn         func(ctx context.Context) (routes.SweepResult, error)
	getRouteFn      func(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error)
	byDriverFn      func(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error)
	byWarehouseFn   func(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error)
	availableFn     func(ctx context.Context) ([]models.DeliveryRoute, error)
	activeFn        func(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error)
	assignFn        func(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error)
	updateStopFn    func(ctx context.Context, stopID uuid.UUID, input routes.UpdateStopInput) (*models.RouteStop, error)
	completeStopFn  func(ctx context.Context, stopID uuid.UUID, notes *string) (*models.RouteStop, error)
	completeRouteFn func(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error)
}

func (s *testRoutesService) SweepUnroutedBatches(ctx context.Context) (routes.SweepResult, error) {
	if s.sweepFn != nil {
		return s.sweepFn(ctx)
	}
	return routes.SweepResult{}, nil
}

func (s *testRoutesService) GetRouteByID(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error) {
	if s.getRouteFn != nil {
		return s.getRouteFn(ctx, id)
	}
	return &models.DeliveryRoute{}, nil
}

func (s *testRoutesService) GetRoutesByDriver(ctx context.Context, driverID uuid.UUID) ([]models.DeliveryRoute, error) {
	if s.byDriverFn != nil {
		return s.byDriverFn(ctx, driverID)
	}
	return nil, nil
}

func (s *testRoutesService) GetRoutesByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.DeliveryRoute, error) {
	if s.byWarehouseFn != nil {
		return s.byWarehouseFn(ctx, warehouseID)
	}
	return nil, nil
}

func (s *testRoutesService) GetAvailableRoutes(ctx context.Context) ([]models.DeliveryRoute, error) {
	if s.availableFn != nil {
		return s.availableFn(ctx)
	}
	return nil, nil
}

func (s *testRoutesService) GetActiveRouteForDriver(ctx context.Context, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if s.activeFn != nil {
		return s.activeFn(ctx, driverID)
	}
	return nil, nil
}

func (s *testRoutesService) AssignDriver(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if s.assignFn != nil {
		return s.assignFn(ctx, routeID, driverID)
	}
	return &models.DeliveryRoute{}, nil
}

func (s *testRoutesService) UpdateStop(ctx context.Context, stopID uuid.UUID, input routes.UpdateStopInput) (*models.RouteStop, error) {
	if s.updateStopFn != nil {
		return s.updateStopFn(ctx, stopID, input)
	}
	return &models.RouteStop{}, nil
}

func (s *testRoutesService) CompleteStop(ctx context.Context, stopID uuid.UUID, notes *string) (*models.RouteStop, error) {
	if s.completeStopFn != nil {
		return s.completeStopFn(ctx, stopID, notes)
	}
	return &models.RouteStop{}, nil
}

func (s *testRoutesService) CompleteRoute(ctx context.Context, routeID, driverID uuid.UUID) (*models.DeliveryRoute, error) {
	if s.completeRouteFn != nil {
		return s.completeRouteFn(ctx, routeID, driverID)
	}
	return &models.DeliveryRoute{}, nil
}

func TestGetRouteSuccess(t *testing.T) {
	routeID := uuid.New()
	svc := &testRoutesService{
		getRouteFn: func(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error) {
			if id != routeID {
				t.Fatalf("unexpected route id %s", id)
			}
			return &models.DeliveryRoute{TotalDistanceKm: 12.5}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/"+routeID.String(), nil)
	req = addRouteParam(req, "routeId", routeID.String())
	resp := httptest.NewRecorder()
	GetRoute(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data models.DeliveryRoute `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.TotalDistanceKm != 12.5 {
		t.Fatalf("unexpected distance %v", envelope.Data.TotalDistanceKm)
	}
}

func TestGetRouteInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/nope", nil)
	req = addRouteParam(req, "routeId", "nope")
	resp := httptest.NewRecorder()
	GetRoute(&testRoutesService{}, testControllerLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetRouteNotFound(t *testing.T) {
	svc := &testRoutesService{
		getRouteFn: func(ctx context.Context, id uuid.UUID) (*models.DeliveryRoute, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "route not found")
		},
	}
	routeID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/"+routeID, nil)
	req = addRouteParam(req, "routeId", routeID)
	resp := httptest.NewRecorder()
	GetRoute(svc, testControllerLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListAvailableRoutesEmpty(t *testing.T) {
	svc := &testRoutesService{
		availableFn: func(ctx context.Context) ([]models.DeliveryRoute, error) {
			return []models.DeliveryRoute{}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/available", nil)
	resp := httptest.NewRecorder()
	ListAvailableRoutes(svc, testControllerLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []models.DeliveryRoute `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty list got %d", len(envelope.Data))
	}
}

func TestAssignRouteDriverSuccess(t *testing.T) {
	routeID := uuid.New()
	driverID := uuid.New()
	called := false
	svc := &testRoutesService{
		assignFn: func(ctx context.Context, rid, did uuid.UUID) (*models.DeliveryRoute, error) {
			called = true
			if rid != routeID || did != driverID {
				t.Fatalf("unexpected ids %s %s", rid, did)
			}
			return &models.DeliveryRoute{DriverID: &did}, nil
		},
	}

	body, _ := json.Marshal(routes.AssignDriverRequest{DriverID: driverID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routes/"+routeID.String()+"/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "routeId", routeID.String())
	resp := httptest.NewRecorder()
	AssignRouteDriver(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestAssignRouteDriverBadBody(t *testing.T) {
	routeID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routes/"+routeID+"/assign", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "routeId", routeID)
	resp := httptest.NewRecorder()
	AssignRouteDriver(&testRoutesService{}, testControllerLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAssignRouteDriverConflict(t *testing.T) {
	svc := &testRoutesService{
		assignFn: func(ctx context.Context, rid, did uuid.UUID) (*models.DeliveryRoute, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "route already assigned")
		},
	}
	routeID := uuid.NewString()
	body, _ := json.Marshal(routes.AssignDriverRequest{DriverID: uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routes/"+routeID+"/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "routeId", routeID)
	resp := httptest.NewRecorder()
	AssignRouteDriver(svc, testControllerLogger())(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestUpdateRouteStopPassesInput(t *testing.T) {
	stopID := uuid.New()
	var got routes.UpdateStopInput
	svc := &testRoutesService{
		updateStopFn: func(ctx context.Context, sid uuid.UUID, input routes.UpdateStopInput) (*models.RouteStop, error) {
			if sid != stopID {
				t.Fatalf("unexpected stop id %s", sid)
			}
			got = input
			return &models.RouteStop{IsCompleted: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/routes/stops/"+stopID.String(), bytes.NewReader([]byte(`{"is_completed":true,"notes":"left at dock"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "stopId", stopID.String())
	resp := httptest.NewRecorder()
	UpdateRouteStop(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.IsCompleted == nil || !*got.IsCompleted {
		t.Fatal("expected is_completed true")
	}
	if got.Notes == nil || *got.Notes != "left at dock" {
		t.Fatalf("unexpected notes %v", got.Notes)
	}
}

func TestCompleteRouteStopForwardsNotes(t *testing.T) {
	stopID := uuid.New()
	called := false
	svc := &testRoutesService{
		completeStopFn: func(ctx context.Context, sid uuid.UUID, notes *string) (*models.RouteStop, error) {
			called = true
			if notes == nil || *notes != "signed by recipient" {
				t.Fatalf("unexpected notes %v", notes)
			}
			return &models.RouteStop{IsCompleted: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/routes/stops/"+stopID.String()+"/complete", bytes.NewReader([]byte(`{"notes":"signed by recipient"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "stopId", stopID.String())
	resp := httptest.NewRecorder()
	CompleteRouteStop(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestCompleteRouteForbidden(t *testing.T) {
	svc := &testRoutesService{
		completeRouteFn: func(ctx context.Context, rid, did uuid.UUID) (*models.DeliveryRoute, error) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "route does not belong to driver")
		},
	}
	routeID := uuid.NewString()
	body, _ := json.Marshal(routes.AssignDriverRequest{DriverID: uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/routes/"+routeID+"/complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "routeId", routeID)
	resp := httptest.NewRecorder()
	CompleteRoute(svc, testControllerLogger())(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestGetDriverActiveRouteNull(t *testing.T) {
	driverID := uuid.New()
	svc := &testRoutesService{
		activeFn: func(ctx context.Context, did uuid.UUID) (*models.DeliveryRoute, error) {
			if did != driverID {
				t.Fatalf("unexpected driver %s", did)
			}
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/drivers/"+driverID.String()+"/active", nil)
	req = addRouteParam(req, "driverId", driverID.String())
	resp := httptest.NewRecorder()
	GetDriverActiveRoute(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data *models.DeliveryRoute `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data != nil {
		t.Fatalf("expected null active route, got %+v", envelope.Data)
	}
}
