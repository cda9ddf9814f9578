package subscription_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/booking-pulse/delivery/signature"
	"github.com/marcelsud/booking-pulse/subscription"
	"github.com/marcelsud/booking-pulse/subscription/mocks"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active subscription with a signing secret", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Store", ctx, subscription.MatchSubscription(func(sub subscription.Subscription) bool {
			return sub.TargetURL == "https://hooks.example.com/bookings" &&
				sub.Active &&
				len(sub.EventTypes) == 2
		})).Return("id", nil)

		service := subscription.NewService(repo)
		sub, err := service.Create(ctx, "https://hooks.example.com/bookings", []string{"booking.created", "booking.cancelled"})
		require.NoError(t, err)

		assert.NotEmpty(t, sub.ID)
		assert.True(t, sub.Subscribed(subscription.Created))
		assert.True(t, sub.Subscribed(subscription.Cancelled))
		assert.False(t, sub.Subscribed(subscription.Rescheduled))

		// the returned secret must be usable for signature verification
		assert.True(t, strings.HasPrefix(sub.Secret, signature.SecretPrefix))
		_, err = signature.ParseSecret(sub.Secret)
		assert.NoError(t, err)
	})

	t.Run("generates a distinct secret per subscription", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Store", ctx, subscription.MatchSubscription(func(sub subscription.Subscription) bool {
			return true
		})).Return("id", nil).Twice()

		service := subscription.NewService(repo)
		first, err := service.Create(ctx, "https://one.example.com", []string{"booking.created"})
		require.NoError(t, err)
		second, err := service.Create(ctx, "https://two.example.com", []string{"booking.created"})
		require.NoError(t, err)

		assert.NotEqual(t, first.Secret, second.Secret)
	})

	t.Run("rejects an empty target url", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		_, err := service.Create(ctx, "", []string{"booking.created"})
		assert.Error(t, err)
	})

	t.Run("rejects a non-http scheme", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		_, err := service.Create(ctx, "ftp://hooks.example.com", []string{"booking.created"})
		assert.ErrorContains(t, err, "scheme")
	})

	t.Run("rejects a url without a host", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		_, err := service.Create(ctx, "https://", []string{"booking.created"})
		assert.Error(t, err)
	})

	t.Run("rejects an empty event set", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		_, err := service.Create(ctx, "https://hooks.example.com", nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown event names", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		_, err := service.Create(ctx, "https://hooks.example.com", []string{"booking.exploded"})
		assert.ErrorContains(t, err, "booking.exploded")
	})
}

func TestUpdateEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the event set", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("UpdateEventTypes", ctx, "sub-1", []subscription.EventType{subscription.Rescheduled}).Return(nil)

		service := subscription.NewService(repo)
		err := service.UpdateEvents(ctx, "sub-1", []string{"booking.rescheduled"})
		assert.NoError(t, err)
	})

	t.Run("rejects unknown event names before touching the store", func(t *testing.T) {
		repo := mocks.NewRepository(t)

		service := subscription.NewService(repo)
		err := service.UpdateEvents(ctx, "sub-1", []string{"nope"})
		assert.Error(t, err)
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("pauses a subscription", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SetActive", ctx, "sub-1", false).Return(nil)

		service := subscription.NewService(repo)
		err := service.SetActive(ctx, "sub-1", false)
		assert.NoError(t, err)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SetActive", ctx, "missing", true).Return(errors.New("not found"))

		service := subscription.NewService(repo)
		err := service.SetActive(ctx, "missing", true)
		assert.Error(t, err)
	})
}
