package metrics

import (
	"context"
	"time"

	"github.com/marcelsud/booking-pulse/delivery"
)

// Metrics represents the current delivery health of the system.
type Metrics struct {
	// Totals is the aggregate of the delivery attempt log
	Totals delivery.Totals `json:"totals"`

	// SuccessRatio is deliveries over attempts, 0 when nothing was attempted
	SuccessRatio float64 `json:"success_ratio"`

	// ActiveSubscriptions is the number of subscriptions currently receiving events
	ActiveSubscriptions int64 `json:"active_subscriptions"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting delivery health metrics.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetDeliveryTotals returns the aggregate attempt counters
	GetDeliveryTotals(ctx context.Context) (delivery.Totals, error)

	// GetActiveSubscriptions returns the number of active subscriptions
	GetActiveSubscriptions(ctx context.Context) (int64, error)
}
