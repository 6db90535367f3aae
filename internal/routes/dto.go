package routes

import (
	"time"

	"github.com/google/uuid"
)

// UpdateStopInput carries the mutable fields of a route stop.
type UpdateStopInput struct {
	IsCompleted *bool
	CompletedAt *time.Time
	Notes       *string
}

// SweepResult summarizes one pass over unrouted batches.
type SweepResult struct {
	Scanned int
	Created int
	Skipped int
	Failed  int
}

// CreateStopRequest is the wire shape for stop updates.
type CreateStopRequest struct {
	IsCompleted *bool      `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Notes       *string    `json:"notes"`
}

// AssignDriverRequest is the wire shape for driver assignment.
type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driver_id" validate:"required"`
}
