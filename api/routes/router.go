package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfigueroa-dev/veloway-backend/api/controllers"
	"github.com/mfigueroa-dev/veloway-backend/api/middleware"
	"github.com/mfigueroa-dev/veloway-backend/internal/notifications"
	routessvc "github.com/mfigueroa-dev/veloway-backend/internal/routes"
	"github.com/mfigueroa-dev/veloway-backend/pkg/config"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
	"github.com/mfigueroa-dev/veloway-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	routesService routessvc.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/routes", func(r chi.Router) {
			r.Get("/available", controllers.ListAvailableRoutes(routesService, logg))
			r.Get("/drivers/{driverId}", controllers.ListDriverRoutes(routesService, logg))
			r.Get("/drivers/{driverId}/active", controllers.GetDriverActiveRoute(routesService, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).
				Get("/warehouses/{warehouseId}", controllers.ListWarehouseRoutes(routesService, logg))

			r.Route("/stops/{stopId}", func(r chi.Router) {
				r.With(middleware.RequireRole(string(enums.UserRoleDriver), logg)).
					Patch("/", controllers.UpdateRouteStop(routesService, logg))
				r.With(middleware.RequireRole(string(enums.UserRoleDriver), logg)).
					Post("/complete", controllers.CompleteRouteStop(routesService, logg))
			})

			r.Route("/{routeId}", func(r chi.Router) {
				r.Get("/", controllers.GetRoute(routesService, logg))
				r.With(middleware.RequireRole(string(enums.UserRoleDriver), logg)).
					Post("/assign", controllers.AssignRouteDriver(routesService, logg))
				r.With(middleware.RequireRole(string(enums.UserRoleDriver), logg)).
					Post("/complete", controllers.CompleteRoute(routesService, logg))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
		})
	})

	return r
}
