// File: services/booking/orchestrator.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uprocket/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmTimeslot drives one booking attempt to a terminal state.
//
// Without an authenticated identity the attempt ends in a login redirect
// that carries the contractor context, and the scheduler bridge is never
// touched. With one, the identity and timeslot are written through the
// bridge, the write is read back to confirm the store observed it, and only
// then is the booking call invoked. The provider envelope decides the rest:
// an error object fails the attempt, booking data moves it to checkout, and
// anything else fails it with a generic message. No retries anywhere.
func (o *DefaultOrchestrator) ConfirmTimeslot(ctx context.Context, user *models.User, req ConfirmRequest) (*Outcome, error) {
	if user == nil {
		return &Outcome{
			State:      StateRedirectLogin,
			RedirectTo: "/login?redirect=/contractor/" + req.ContractorID,
		}, nil
	}

	flow := models.BookingFlow{
		FlowID:           uuid.New().String(),
		UserUID:          user.UID,
		ContractorID:     req.ContractorID,
		Duration:         req.Duration,
		SessionID:        req.SessionID,
		SelectedTimeslot: &req.Timeslot,
		BookingInfo: &models.BookingInfo{
			PrimaryParticipant: models.Participant{
				Name:  user.Name,
				Email: user.Email,
			},
		},
	}

	// Phase one: write the intended state through the bridge.
	if err := o.Store.Put(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to write booking state: %w", err)
	}

	// Phase two: confirm the store observed the write before acting on it.
	ready, err := o.Store.Get(ctx, flow.FlowID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back booking state: %w", err)
	}
	if ready == nil || ready.SelectedTimeslot == nil || ready.BookingInfo == nil {
		return nil, ErrStoreNotReady
	}

	envelope, err := o.Connector.BookTimeslot(ctx, *ready)
	if err != nil {
		return nil, fmt.Errorf("booking call failed: %w", err)
	}

	switch {
	case envelope.HasError():
		o.Logger.Warn("Booking rejected by provider",
			zap.String("flowId", flow.FlowID),
			zap.String("contractorId", req.ContractorID),
			zap.String("error", envelope.ErrorMessage()))
		return &Outcome{State: StateFailed, Message: envelope.ErrorMessage()}, nil

	case envelope.HasData():
		bookingID, err := parseBookingID(envelope.Data)
		if err != nil {
			o.Logger.Error("Provider booking data missing id", zap.Error(err))
			return &Outcome{State: StateFailed, Message: "Unexpected booking error"}, nil
		}

		pending := models.PendingBooking{
			BookingID:    bookingID,
			UserUID:      user.UID,
			ContractorID: req.ContractorID,
			Duration:     req.Duration,
			Timeslot:     req.Timeslot,
		}
		if err := o.Pending.Save(ctx, pending); err != nil {
			return nil, fmt.Errorf("failed to store pending booking: %w", err)
		}

		o.recordActivity(ctx, pending, "pre-booked")
		o.scheduleExpiry(ctx, pending)
		_ = o.Store.Delete(ctx, flow.FlowID)

		return &Outcome{State: StateAwaitingCheckout, RedirectTo: "/checkout", Pending: &pending}, nil

	default:
		o.Logger.Error("Unexpected booking response shape", zap.String("flowId", flow.FlowID))
		return &Outcome{State: StateFailed, Message: "Unexpected booking error"}, nil
	}
}

// recordActivity writes a booking activity row. Failures are logged, never
// surfaced: the attempt already succeeded provider-side.
func (o *DefaultOrchestrator) recordActivity(ctx context.Context, pending models.PendingBooking, action string) {
	if o.Records == nil {
		return
	}
	record := models.BookingRecord{
		BookingID:    pending.BookingID,
		UserUID:      pending.UserUID,
		ContractorID: pending.ContractorID,
		Action:       action,
		Duration:     pending.Duration,
		StartTime:    pending.Timeslot.StartTime,
		EndTime:      pending.Timeslot.EndTime,
		CreatedAt:    time.Now(),
	}
	if _, err := o.Records.Create(ctx, record); err != nil {
		o.Logger.Warn("Failed to record booking activity",
			zap.String("bookingId", pending.BookingID), zap.Error(err))
	}
}

// scheduleExpiry enqueues the cancel sweep for a pre-booking left unpaid.
func (o *DefaultOrchestrator) scheduleExpiry(ctx context.Context, pending models.PendingBooking) {
	if o.Tasks == nil {
		return
	}
	if err := o.Tasks.EnqueueBookingExpiry(ctx, pending); err != nil {
		o.Logger.Warn("Failed to schedule pre-booking expiry",
			zap.String("bookingId", pending.BookingID), zap.Error(err))
	}
}

// parseBookingID pulls the booking id out of the provider's data object,
// which uses booking_id on booking creation and id elsewhere.
func parseBookingID(data json.RawMessage) (string, error) {
	var parsed struct {
		BookingID string `json:"booking_id"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse booking data: %w", err)
	}
	if parsed.BookingID != "" {
		return parsed.BookingID, nil
	}
	if parsed.ID != "" {
		return parsed.ID, nil
	}
	return "", fmt.Errorf("booking data has no id")
}
