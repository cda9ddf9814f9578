package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/subscription"
)

// StoreCollector implements Collector over the persistence layer.
type StoreCollector struct {
	attempts delivery.Reader
	subs     subscription.Reader
}

// NewStoreCollector creates a collector reading from the attempt log and
// the subscription store.
func NewStoreCollector(attempts delivery.Reader, subs subscription.Reader) *StoreCollector {
	return &StoreCollector{
		attempts: attempts,
		subs:     subs,
	}
}

// Collect gathers current metrics from the system.
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	totals, err := c.GetDeliveryTotals(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("collecting delivery totals: %w", err)
	}

	active, err := c.GetActiveSubscriptions(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("collecting active subscriptions: %w", err)
	}

	m := Metrics{
		Totals:              totals,
		ActiveSubscriptions: active,
		Timestamp:           time.Now(),
	}
	if totals.Attempts > 0 {
		m.SuccessRatio = float64(totals.Deliveries) / float64(totals.Attempts)
	}
	return m, nil
}

// GetDeliveryTotals returns the aggregate attempt counters.
func (c *StoreCollector) GetDeliveryTotals(ctx context.Context) (delivery.Totals, error) {
	return c.attempts.Totals(ctx)
}

// GetActiveSubscriptions returns the number of active subscriptions.
func (c *StoreCollector) GetActiveSubscriptions(ctx context.Context) (int64, error) {
	subs, err := c.subs.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing active subscriptions: %w", err)
	}
	return int64(len(subs)), nil
}
