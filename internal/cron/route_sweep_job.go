package cron

import (
	"context"
	"fmt"

	"github.com/mfigueroa-dev/veloway-backend/internal/routes"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
)

type batchSweeper interface {
	SweepUnroutedBatches(ctx context.Context) (routes.SweepResult, error)
}

// RouteSweepJobParams wires the periodic batch-to-route sweep.
type RouteSweepJobParams struct {
	Logger  *logger.Logger
	Sweeper batchSweeper
}

type routeSweepJob struct {
	logg    *logger.Logger
	sweeper batchSweeper
}

// NewRouteSweepJob builds the job that routes collected batches.
func NewRouteSweepJob(params RouteSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("batch sweeper required")
	}
	return &routeSweepJob{logg: params.Logger, sweeper: params.Sweeper}, nil
}

func (j *routeSweepJob) Name() string { return "route-sweep" }

func (j *routeSweepJob) Run(ctx context.Context) error {
	result, err := j.sweeper.SweepUnroutedBatches(ctx)
	if err != nil {
		return fmt.Errorf("route sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"batches_scanned": result.Scanned,
		"routes_created":  result.Created,
		"batches_skipped": result.Skipped,
		"batches_failed":  result.Failed,
	})
	j.logg.Info(logCtx, "route sweep complete")
	return nil
}
