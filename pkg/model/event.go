package model

import "time"

type EventKind string

const (
	EventBookingCreated EventKind = "booking:created"
	EventBookingUpdated EventKind = "booking:updated"
	EventBookingDeleted EventKind = "booking:deleted"
)

// ChangeEvent is broadcast to connected subscribers whenever a booking
// changes. Events are ephemeral: there is no log and no replay. Deleted
// events carry only the booking ID.
type ChangeEvent struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Booking   *Booking  `json:"booking,omitempty"`
	BookingID string    `json:"booking_id"`
	EmittedAt time.Time `json:"emitted_at"`
}
