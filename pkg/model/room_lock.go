package model

import "time"

// RoomLock is an advisory lock held across the conflict check and the write
// for a single room. The unique _id makes acquisition atomic; expires_at lets
// a TTL index reap locks orphaned by a crashed process.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
