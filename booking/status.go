package booking

import "fmt"

/* Status represents the lifecycle state of a booking
 * Follows: Confirmed -> Cancelled, or Confirmed -> Completed/NoShow
 */
type Status int

const (
	Confirmed Status = iota + 1
	Cancelled
	Completed
	NoShow
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	case Completed:
		return "completed"
	case NoShow:
		return "no_show"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string.
func NewStatus(str string) Status {
	switch str {
	case "confirmed":
		return Confirmed
	case "cancelled":
		return Cancelled
	case "completed":
		return Completed
	case "no_show":
		return NoShow
	default:
		return Confirmed
	}
}

// Validate checks if the status is valid.
func (s Status) Validate() error {
	if s < Confirmed || s > NoShow {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}

// IsOutcome returns true for the states recorded after the meeting time.
func (s Status) IsOutcome() bool {
	return s == Completed || s == NoShow
}

// IsFinal returns true if the status is a terminal state.
func (s Status) IsFinal() bool {
	return s == Cancelled || s.IsOutcome()
}
