package booking

import (
	"context"
	"errors"
	"time"

	"github.com/marcelsud/booking-pulse/risk"
)

// ErrNotFound is returned when a requested booking does not exist.
var ErrNotFound = errors.New("booking not found")

/* Small, focused interfaces
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for bookings.
type Reader interface {
	Get(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context, limit int) ([]Booking, error)
	/* HasPrior reports whether the email booked before,
	 * regardless of outcome; cancellations count
	 */
	HasPrior(ctx context.Context, email string) (bool, error)
}

// Writer provides write operations for bookings.
type Writer interface {
	Store(ctx context.Context, b Booking) (string, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateSchedule(ctx context.Context, id string, startsAt time.Time) error
	/* UpdateRisk persists the score verbatim so accuracy reporting
	 * is reproducible against the exact value predicted at the time
	 */
	UpdateRisk(ctx context.Context, id string, score int, tier risk.Tier) error
}

// HistoryReader provides the aggregate reads backing the recommender
// and the accuracy report.
type HistoryReader interface {
	/* Occurrences returns one (local weekday, local hour) pair per
	 * confirmed or completed booking starting after since, optionally
	 * filtered to a set of event types
	 */
	Occurrences(ctx context.Context, since time.Time, eventTypes []string) ([]Occurrence, error)
	// Outcomes returns tier/result pairs for resolved bookings after since.
	Outcomes(ctx context.Context, since time.Time) ([]risk.Outcome, error)
}

/* Interface composition - combining small interfaces into larger ones */
type Repository interface {
	Reader
	Writer
	HistoryReader
	Close(ctx context.Context) error
}
