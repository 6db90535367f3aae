package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfigueroa-dev/veloway-backend/api/responses"
	"github.com/mfigueroa-dev/veloway-backend/api/validators"
	"github.com/mfigueroa-dev/veloway-backend/internal/routes"
	pkgerrors "github.com/mfigueroa-dev/veloway-backend/pkg/errors"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
)

const maxStopNoteLen = 500

func sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	clean := validators.SanitizeString(*notes, maxStopNoteLen)
	return &clean
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// GetRoute returns one route with its stops and batch.
func GetRoute(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "routeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		route, err := svc.GetRouteByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, route)
	}
}

// ListDriverRoutes returns every route assigned to a driver, newest first.
func ListDriverRoutes(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, err := parseIDParam(r, "driverId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.GetRoutesByDriver(r.Context(), driverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetDriverActiveRoute returns the driver's in-progress route, or null.
func GetDriverActiveRoute(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, err := parseIDParam(r, "driverId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		route, err := svc.GetActiveRouteForDriver(r.Context(), driverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, route)
	}
}

// ListWarehouseRoutes returns routes touching a warehouse on either end.
func ListWarehouseRoutes(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, err := parseIDParam(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.GetRoutesByWarehouse(r.Context(), warehouseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListAvailableRoutes returns pending, unassigned routes.
func ListAvailableRoutes(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.GetAvailableRoutes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AssignRouteDriver hands a pending route to a driver.
func AssignRouteDriver(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID, err := parseIDParam(r, "routeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body routes.AssignDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		route, err := svc.AssignDriver(r.Context(), routeID, body.DriverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, route)
	}
}

// UpdateRouteStop mutates completion state and notes of one stop.
func UpdateRouteStop(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stopID, err := parseIDParam(r, "stopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body routes.CreateStopRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stop, err := svc.UpdateStop(r.Context(), stopID, routes.UpdateStopInput{
			IsCompleted: body.IsCompleted,
			CompletedAt: body.CompletedAt,
			Notes:       sanitizeNotes(body.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stop)
	}
}

// CompleteRouteStop forces a stop to completed.
func CompleteRouteStop(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stopID, err := parseIDParam(r, "stopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body routes.CreateStopRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		stop, err := svc.CompleteStop(r.Context(), stopID, sanitizeNotes(body.Notes))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stop)
	}
}

// CompleteRoute closes a route on behalf of its assigned driver.
func CompleteRoute(svc routes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeID, err := parseIDParam(r, "routeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body routes.AssignDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		route, err := svc.CompleteRoute(r.Context(), routeID, body.DriverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, route)
	}
}
