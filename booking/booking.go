package booking

import (
	"time"

	"github.com/marcelsud/booking-pulse/risk"
)

/* Booking represents a scheduled meeting in the system
 * Uses value semantics as it represents data, not behavior
 */
type Booking struct {
	ID           string
	EventType    string
	CreatedAt    time.Time
	StartsAt     time.Time
	Timezone     string
	InviteeName  string
	InviteeEmail string
	Topic        string
	Notes        string
	RepeatBooker bool
	Status       Status
	RiskScore    int
	RiskTier     risk.Tier
	UpdatedAt    time.Time
}

// Location resolves the booking's local timezone, falling back to UTC
// when the stored name is unknown.
func (b Booking) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Occurrence is one historical booking reduced to its local weekday
// and hour, the only dimensions the heatmap needs.
type Occurrence struct {
	Day  time.Weekday
	Hour int
}
