package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/subscription"
	"github.com/marcelsud/booking-pulse/subscription/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type attemptsStub struct {
	attempts []delivery.Attempt
}

func (s *attemptsStub) ListBySubscription(ctx context.Context, subscriptionID string, limit int) ([]delivery.Attempt, error) {
	return s.attempts, nil
}

func (s *attemptsStub) Totals(ctx context.Context) (delivery.Totals, error) {
	return delivery.Totals{}, nil
}

func newSubscriptionHandlers(t *testing.T, s subscription.UseCase, attempts delivery.Reader) http.Handler {
	t.Helper()
	return Handlers(context.Background(), nil, s, nil, nil, attempts, nil)
}

func TestPostSubscription(t *testing.T) {
	t.Run("returns the secret exactly once", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Create", mock.Anything, "https://hooks.example.com", []string{"booking.created"}).
			Return(subscription.Subscription{
				ID:         "sub-1",
				TargetURL:  "https://hooks.example.com",
				EventTypes: []subscription.EventType{subscription.Created},
				Active:     true,
				Secret:     "whsec_c2VjcmV0",
			}, nil)

		h := newSubscriptionHandlers(t, s, nil)
		req := httptest.NewRequest(http.MethodPost, "/v1/subscriptions",
			strings.NewReader(`{"target_url":"https://hooks.example.com","event_types":["booking.created"]}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var result subscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "sub-1", result.ID)
		assert.Equal(t, "whsec_c2VjcmV0", result.Secret)
		assert.Equal(t, []string{"booking.created"}, result.EventTypes)
	})

	t.Run("rejects an invalid configuration", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Create", mock.Anything, "ftp://nope", []string{"booking.created"}).
			Return(subscription.Subscription{}, assert.AnError)

		h := newSubscriptionHandlers(t, s, nil)
		req := httptest.NewRequest(http.MethodPost, "/v1/subscriptions",
			strings.NewReader(`{"target_url":"ftp://nope","event_types":["booking.created"]}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSubscriptions(t *testing.T) {
	t.Run("never exposes secrets on reads", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("List", mock.Anything).Return([]subscription.Subscription{
			{
				ID:         "sub-1",
				TargetURL:  "https://hooks.example.com",
				EventTypes: []subscription.EventType{subscription.Created},
				Active:     true,
				Secret:     "whsec_c2VjcmV0",
			},
		}, nil)

		h := newSubscriptionHandlers(t, s, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/subscriptions", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "whsec_")

		var results []subscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Secret)
	})
}

func TestPutSubscriptionEvents(t *testing.T) {
	t.Run("replaces the event set", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("UpdateEvents", mock.Anything, "sub-1", []string{"booking.cancelled"}).Return(nil)

		h := newSubscriptionHandlers(t, s, nil)
		req := httptest.NewRequest(http.MethodPut, "/v1/subscriptions/sub-1/events",
			strings.NewReader(`{"event_types":["booking.cancelled"]}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestPutSubscriptionActive(t *testing.T) {
	t.Run("pauses a subscription", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("SetActive", mock.Anything, "sub-1", false).Return(nil)

		h := newSubscriptionHandlers(t, s, nil)
		req := httptest.NewRequest(http.MethodPut, "/v1/subscriptions/sub-1/active",
			strings.NewReader(`{"active":false}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestGetSubscriptionAttempts(t *testing.T) {
	t.Run("lists the attempt log", func(t *testing.T) {
		code := 500
		stub := &attemptsStub{attempts: []delivery.Attempt{
			{
				ID:             "at-1",
				SubscriptionID: "sub-1",
				Event:          subscription.Created,
				StatusCode:     &code,
				ResponseBody:   "upstream broke",
				Success:        false,
				CreatedAt:      time.Now(),
			},
		}}

		h := newSubscriptionHandlers(t, nil, stub)
		req := httptest.NewRequest(http.MethodGet, "/v1/subscriptions/sub-1/attempts", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var results []attemptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "booking.created", results[0].Event)
		require.NotNil(t, results[0].StatusCode)
		assert.Equal(t, 500, *results[0].StatusCode)
		assert.False(t, results[0].Success)
	})
}
