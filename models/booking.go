// models/booking.go
package models

import "time"

// Timeslot is one bookable start/end pair picked from the availability set.
type Timeslot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// BookingInfo carries the booking participant the scheduler needs when the
// booking call fires. Rebuilt whenever the acting user or timeslot changes.
type BookingInfo struct {
	PrimaryParticipant Participant `json:"primaryParticipant"`
}

// BookingFlow is the per-attempt state the scheduler bridge holds: one flow
// per user-driven booking attempt, written through before the booking call.
type BookingFlow struct {
	FlowID           string       `json:"flowId"`
	UserUID          string       `json:"userUid"`
	ContractorID     string       `json:"contractorId"`
	Duration         int          `json:"duration"`
	SessionID        string       `json:"sessionId"`
	SelectedTimeslot *Timeslot    `json:"selectedTimeslot,omitempty"`
	BookingInfo      *BookingInfo `json:"bookingInfo,omitempty"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// PendingBooking is the tentative provider-side event held between the
// booking call and the post-payment confirm.
type PendingBooking struct {
	BookingID    string    `json:"booking_id"`
	UserUID      string    `json:"user_uid"`
	ContractorID string    `json:"contractor_id"`
	Duration     int       `json:"duration"`
	Timeslot     Timeslot  `json:"timeslot"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingRecord is the activity row persisted for every booking transition.
type BookingRecord struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	BookingID    string    `bson:"booking_id" json:"booking_id"`
	UserUID      string    `bson:"user_uid" json:"user_uid"`
	ContractorID string    `bson:"contractor_id" json:"contractor_id"`
	Action       string    `bson:"action" json:"action"` // pre-booked, confirmed, cancelled, expired
	Duration     int       `bson:"duration" json:"duration"`
	StartTime    time.Time `bson:"start_time" json:"start_time"`
	EndTime      time.Time `bson:"end_time" json:"end_time"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
