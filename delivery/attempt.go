package delivery

import (
	"time"

	"github.com/marcelsud/booking-pulse/subscription"
)

// MaxResponseBody caps how much of a subscriber's response is kept
// per attempt record.
const MaxResponseBody = 2000

/* Attempt is the append-only record of one delivery try
 * Never mutated after insertion: the attempt log is the durable audit
 * trail for delivery success and for diagnosing subscriber outages
 */
type Attempt struct {
	ID             string
	SubscriptionID string
	Event          subscription.EventType
	// StatusCode is nil when the failure was network-level; the error
	// message is then captured in ResponseBody
	StatusCode   *int
	ResponseBody string
	Success      bool
	CreatedAt    time.Time
}

// Totals aggregates the attempt log for delivery health reporting.
type Totals struct {
	Attempts   int64
	Deliveries int64
	Failures   int64
}
