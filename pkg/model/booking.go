package model

import (
	"time"
)

type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	StartTime time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingUpdate carries a time-range change. Only the interval of a booking
// is mutable; owner and room are fixed at creation.
type BookingUpdate struct {
	StartTime *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty" validate:"omitempty"`
}

// BookingWithRoom is a booking with its room joined in for listings.
type BookingWithRoom struct {
	Booking `bson:",inline"`
	Room    *Room `json:"room,omitempty" bson:"-"`
}
