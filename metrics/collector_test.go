package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/subscription"
)

type attemptsStub struct {
	totals delivery.Totals
	err    error
}

func (s *attemptsStub) ListBySubscription(ctx context.Context, subscriptionID string, limit int) ([]delivery.Attempt, error) {
	return nil, nil
}

func (s *attemptsStub) Totals(ctx context.Context) (delivery.Totals, error) {
	return s.totals, s.err
}

type subsStub struct {
	active []subscription.Subscription
	err    error
}

func (s *subsStub) Get(ctx context.Context, id string) (subscription.Subscription, error) {
	return subscription.Subscription{}, nil
}

func (s *subsStub) List(ctx context.Context) ([]subscription.Subscription, error) {
	return s.active, s.err
}

func (s *subsStub) ListActive(ctx context.Context) ([]subscription.Subscription, error) {
	return s.active, s.err
}

func TestStoreCollector(t *testing.T) {
	ctx := context.Background()

	t.Run("collects totals and ratio", func(t *testing.T) {
		c := NewStoreCollector(
			&attemptsStub{totals: delivery.Totals{Attempts: 8, Deliveries: 6, Failures: 2}},
			&subsStub{active: []subscription.Subscription{{ID: "a"}, {ID: "b"}}},
		)

		m, err := c.Collect(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(8), m.Totals.Attempts)
		assert.Equal(t, int64(6), m.Totals.Deliveries)
		assert.InDelta(t, 0.75, m.SuccessRatio, 0.0001)
		assert.Equal(t, int64(2), m.ActiveSubscriptions)
		assert.False(t, m.Timestamp.IsZero())
	})

	t.Run("empty attempt log reports zero ratio", func(t *testing.T) {
		c := NewStoreCollector(&attemptsStub{}, &subsStub{})

		m, err := c.Collect(ctx)
		require.NoError(t, err)
		assert.Zero(t, m.SuccessRatio)
		assert.Zero(t, m.ActiveSubscriptions)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		c := NewStoreCollector(&attemptsStub{err: errors.New("connection refused")}, &subsStub{})

		_, err := c.Collect(ctx)
		assert.Error(t, err)
	})
}
