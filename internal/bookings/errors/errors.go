package errors

import "errors"

var (
	ErrNotFound  = errors.New("booking not found")
	ErrInvalidID = errors.New("invalid booking id")

	// ErrLockHeld means another request currently holds the advisory lock
	// for the room.
	ErrLockHeld = errors.New("room lock already held")
)
