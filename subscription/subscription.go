package subscription

import (
	"fmt"
	"time"
)

/* Subscription represents a registered external endpoint interested in
 * a subset of booking lifecycle events
 * The signing secret is issued once at creation; it is returned to the
 * caller exactly once and must never appear in logs afterwards
 */
type Subscription struct {
	ID         string
	TargetURL  string
	EventTypes []EventType
	Active     bool
	Secret     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Subscribed reports whether the subscription wants the given event.
func (s Subscription) Subscribed(event EventType) bool {
	for _, e := range s.EventTypes {
		if e == event {
			return true
		}
	}
	return false
}

/* EventType is the closed set of booking lifecycle events */
type EventType int

const (
	Created EventType = iota + 1
	Cancelled
	Rescheduled
)

// String returns the wire name of the event.
func (e EventType) String() string {
	switch e {
	case Created:
		return "booking.created"
	case Cancelled:
		return "booking.cancelled"
	case Rescheduled:
		return "booking.rescheduled"
	default:
		return "unknown"
	}
}

// NewEventType creates an EventType from its wire name.
// Unknown names map to the zero value; check with Validate.
func NewEventType(s string) EventType {
	switch s {
	case "booking.created":
		return Created
	case "booking.cancelled":
		return Cancelled
	case "booking.rescheduled":
		return Rescheduled
	default:
		return EventType(0)
	}
}

// Validate checks if the event type is valid.
func (e EventType) Validate() error {
	if e < Created || e > Rescheduled {
		return fmt.Errorf("invalid event type: %d", e)
	}
	return nil
}
