package routes

import (
	"math"

	"github.com/mfigueroa-dev/veloway-backend/pkg/config"
	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
	"github.com/mfigueroa-dev/veloway-backend/pkg/geo"
)

// Estimator derives route-level distance and duration from a planned stop
// list. Duration is a coarse per-stop heuristic, not a routing-engine
// estimate.
type Estimator struct {
	cfg config.RoutingConfig
}

// NewEstimator builds an estimator from routing tunables.
func NewEstimator(cfg config.RoutingConfig) Estimator {
	return Estimator{cfg: cfg}
}

// TotalDistanceKm sums the great-circle distance over consecutive stops in
// sequence order, rounded to two decimals. Zero for fewer than two stops.
func (e Estimator) TotalDistanceKm(stops []PlannedStop) float64 {
	points := make([]geo.Point, len(stops))
	for i, stop := range stops {
		points[i] = geo.Point{Lat: stop.Latitude, Lon: stop.Longitude}
	}
	return math.Round(geo.PathDistanceKm(points)*100) / 100
}

// EstimatedDurationMinutes combines fixed per-stop handling time with a
// travel allowance. Intercity legs get a flat allowance instead of the
// per-stop one.
func (e Estimator) EstimatedDurationMinutes(stopCount int, batchType enums.BatchType) int {
	base := stopCount * e.cfg.StopHandlingMinutes
	if batchType == enums.BatchTypeIntercity {
		return base + e.cfg.IntercityTravelMinutes
	}
	return base + stopCount*e.cfg.InterStopTravelMinutes
}
