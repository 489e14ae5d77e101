// models/scheduling.go
package models

// OpenHours describes a recurring availability window on the provider side.
type OpenHours struct {
	Days     []int  `json:"days"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// Participant is one attendee of the scheduled consultation.
type Participant struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	CalendarIDs []string    `json:"calendar_ids,omitempty"`
	OpenHours   []OpenHours `json:"open_hours,omitempty"`
}

// Organizer identifies the calendar the booked event lands on.
type Organizer struct {
	Email      string `json:"email"`
	CalendarID string `json:"calendar_id"`
}

// Availability holds the availability rules of a scheduling configuration.
type Availability struct {
	DurationMinutes  int           `json:"duration_minutes"`
	IntervalMinutes  int           `json:"interval_minutes"`
	RoundTo30Minutes bool          `json:"round_to_30_minutes"`
	Participants     []Participant `json:"participants,omitempty"`
}

// EventBooking describes the event created when a timeslot is booked.
// Type 1 means pre-booking: the event stays tentative until confirmed.
type EventBooking struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        int        `json:"type"`
	Organizer   *Organizer `json:"organizer,omitempty"`
}

// SchedulingConfig is the provider-side configuration bound to one contractor
// and one meeting duration.
type SchedulingConfig struct {
	Version      string       `json:"version"`
	Availability Availability `json:"availability"`
	EventBooking EventBooking `json:"event_booking"`
}

// UpdateConfigRequest is the body of a profile configuration save. Calendar
// ids and open hours come from the contractor's own calendar listing.
type UpdateConfigRequest struct {
	AvailabilityCalendarIDs []string    `json:"availability_calendar_ids" binding:"required"`
	AvailabilityOpenHours   []OpenHours `json:"availability_open_hours" binding:"required"`
	BookingCalendarID       string      `json:"booking_calendar_id" binding:"required"`
	EventTitle              string      `json:"event_title"`
	EventDescription        string      `json:"event_description"`
}

// Calendar is a provider calendar as returned by the calendar listing.
type Calendar struct {
	ID            string `json:"id"`
	GrantID       string `json:"grant_id,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsPrimary     *bool  `json:"is_primary"`
	IsOwnedByUser bool   `json:"is_owned_by_user"`
	ReadOnly      bool   `json:"read_only"`
	Timezone      string `json:"timezone,omitempty"`
	Object        string `json:"object,omitempty"`
}

// SessionRequest asks for a short-lived scheduling session against one
// contractor's configuration.
type SessionRequest struct {
	ContractorID string `json:"contractor_id" binding:"required"`
	Duration     int    `json:"duration" binding:"required"`
}
