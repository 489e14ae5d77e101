// File: services/booking/connector.go
package booking

import (
	"context"

	"uprocket/models"
	"uprocket/services/scheduling"
)

// SchedulerConnector invokes the scheduler's booking operation for a flow.
// It is a pass-through: whatever timeslot and booking info the flow holds at
// call time is what gets booked, and the provider envelope comes back
// unmodified.
type SchedulerConnector interface {
	BookTimeslot(ctx context.Context, flow models.BookingFlow) (*scheduling.Envelope, error)
}

// NylasSchedulerConnector implements SchedulerConnector against the Nylas
// session-scoped booking endpoint.
type NylasSchedulerConnector struct {
	Nylas scheduling.NylasAPI
}

// BookTimeslot creates the pre-booked event using the flow's session token.
func (c *NylasSchedulerConnector) BookTimeslot(ctx context.Context, flow models.BookingFlow) (*scheduling.Envelope, error) {
	if flow.SelectedTimeslot == nil || flow.BookingInfo == nil {
		return nil, ErrStoreNotReady
	}
	return c.Nylas.BookTimeslot(ctx, flow.SessionID, *flow.SelectedTimeslot, *flow.BookingInfo)
}
