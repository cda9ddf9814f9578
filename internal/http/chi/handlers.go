package chi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/booking-pulse/availability"
	"github.com/marcelsud/booking-pulse/booking"
	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/recommend"
	"github.com/marcelsud/booking-pulse/subscription"
)

// Handlers sets up the booking API routes
func Handlers(
	ctx context.Context,
	bookingService booking.UseCase,
	subscriptionService subscription.UseCase,
	availabilityService availability.UseCase,
	recommender recommend.UseCase,
	attempts delivery.Reader,
	metricsHandler http.Handler,
) *chi.Mux {
	logger := httplog.NewLogger("booking-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/bookings", postBooking(bookingService))
		r.Method(http.MethodGet, "/bookings", getBookings(bookingService))
		r.Method(http.MethodGet, "/bookings/{id}", getBooking(bookingService))
		r.Method(http.MethodPost, "/bookings/{id}/cancel", cancelBooking(bookingService))
		r.Method(http.MethodPost, "/bookings/{id}/reschedule", rescheduleBooking(bookingService))
		r.Method(http.MethodPost, "/bookings/{id}/outcome", recordOutcome(bookingService))
		r.Method(http.MethodPost, "/bookings/{id}/rescore", rescoreBooking(bookingService))
		r.Method(http.MethodGet, "/reports/risk-accuracy", getAccuracyReport(bookingService))

		r.Method(http.MethodGet, "/slots", getSlots(availabilityService))
		r.Method(http.MethodGet, "/recommendations", getRecommendations(recommender))
		r.Method(http.MethodGet, "/recommendations/summary", getRecommendationSummary(recommender))

		r.Method(http.MethodPost, "/subscriptions", postSubscription(subscriptionService))
		r.Method(http.MethodGet, "/subscriptions", getSubscriptions(subscriptionService))
		r.Method(http.MethodGet, "/subscriptions/{id}", getSubscription(subscriptionService))
		r.Method(http.MethodPut, "/subscriptions/{id}/events", putSubscriptionEvents(subscriptionService))
		r.Method(http.MethodPut, "/subscriptions/{id}/active", putSubscriptionActive(subscriptionService))
		r.Method(http.MethodGet, "/subscriptions/{id}/attempts", getSubscriptionAttempts(attempts))
	})

	return r
}

// writeError maps domain errors to status codes. Missing entities are
// 404, everything else surfaces as the given fallback.
func writeError(w http.ResponseWriter, err error, fallback int) {
	status := fallback
	if errors.Is(err, booking.ErrNotFound) || errors.Is(err, subscription.ErrNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}
