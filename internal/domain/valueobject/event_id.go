package valueobject

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EventID is an immutable value object identifying a single forwarded event.
// It correlates every diagnostic emitted for that event.
type EventID struct {
	value string
}

// NewEventID creates a validated EventID from a string.
func NewEventID(value string) (EventID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return EventID{}, fmt.Errorf("event ID must not be empty")
	}
	return EventID{value: trimmed}, nil
}

// GenerateEventID returns a random EventID for events that arrive without one.
func GenerateEventID() EventID {
	return EventID{value: uuid.NewString()}
}

// String returns the string representation of the EventID.
func (e EventID) String() string {
	return e.value
}

// IsZero reports whether the EventID was never set.
func (e EventID) IsZero() bool {
	return e.value == ""
}

// Equals checks equality with another EventID.
func (e EventID) Equals(other EventID) bool {
	return e.value == other.value
}
