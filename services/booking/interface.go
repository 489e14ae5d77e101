package booking

import (
	"context"

	recordsRepo "uprocket/database/repository/records"
	"uprocket/models"

	"go.uber.org/zap"
)

// AttemptState names the terminal and transitional states of one booking
// attempt.
type AttemptState string

const (
	StateTimeslotSelected AttemptState = "timeslot_selected"
	StateRedirectLogin    AttemptState = "redirect_login"
	StateAwaitingCheckout AttemptState = "awaiting_checkout"
	StateFailed           AttemptState = "failed"
)

// ConfirmRequest carries one selected timeslot into a booking attempt.
type ConfirmRequest struct {
	ContractorID string          `json:"contractor_id" binding:"required"`
	Duration     int             `json:"duration" binding:"required"`
	SessionID    string          `json:"session_id" binding:"required"`
	Timeslot     models.Timeslot `json:"timeslot" binding:"required"`
}

// Outcome is the result of a booking attempt: where the client should go
// next, and the pending booking when one was created.
type Outcome struct {
	State      AttemptState           `json:"state"`
	RedirectTo string                 `json:"redirect_to,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Pending    *models.PendingBooking `json:"pending,omitempty"`
}

// Orchestrator runs the booking attempt state machine.
type Orchestrator interface {
	// ConfirmTimeslot takes the acting user (nil when unauthenticated) and
	// the selected timeslot, and drives the attempt to a terminal state.
	ConfirmTimeslot(ctx context.Context, user *models.User, req ConfirmRequest) (*Outcome, error)
}

// TaskEnqueuer schedules the deferred expiry sweep for a pre-booking.
type TaskEnqueuer interface {
	EnqueueBookingExpiry(ctx context.Context, pending models.PendingBooking) error
}

// DefaultOrchestrator implements Orchestrator.
type DefaultOrchestrator struct {
	Store     SchedulerStore
	Connector SchedulerConnector
	Pending   PendingBookingStore
	Records   recordsRepo.RecordRepository
	Tasks     TaskEnqueuer
	Logger    *zap.Logger
}
