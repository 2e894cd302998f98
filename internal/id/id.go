package id

import (
	"time"

	"github.com/google/uuid"
)

// Session returns a new random session identifier.
func Session() string {
	return uuid.NewString()
}

// Event returns a new time-ordered event identifier.
// Falls back to a random UUID if the v7 generator fails.
func Event() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// Short returns the first 8 hex characters of a random UUID.
// Used in log attributes where a full UUID is noise.
func Short() string {
	return uuid.NewString()[:8]
}

// EventTime extracts the creation time from an event ID produced by Event.
// Returns false if the ID is not a valid UUIDv7.
func EventTime(eventID string) (time.Time, bool) {
	u, err := uuid.Parse(eventID)
	if err != nil || u.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), true
}
