package chi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/booking-pulse/booking"
)

/* HTTP layer DTOs for the booking API
 * Separate from domain entities to avoid leaking internal structure
 */

// bookingRequest represents the incoming booking creation payload
type bookingRequest struct {
	EventType    string    `json:"event_type"`
	StartsAt     time.Time `json:"starts_at"`
	Timezone     string    `json:"timezone"`
	InviteeName  string    `json:"invitee_name"`
	InviteeEmail string    `json:"invitee_email"`
	Topic        string    `json:"topic"`
	Notes        string    `json:"notes"`
}

// bookingResponse represents a booking in the API
type bookingResponse struct {
	ID           string    `json:"id"`
	EventType    string    `json:"event_type"`
	StartsAt     time.Time `json:"starts_at"`
	Timezone     string    `json:"timezone"`
	InviteeName  string    `json:"invitee_name"`
	InviteeEmail string    `json:"invitee_email"`
	Topic        string    `json:"topic,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RepeatBooker bool      `json:"repeat_booker"`
	Status       string    `json:"status"`
	RiskScore    int       `json:"risk_score"`
	RiskTier     string    `json:"risk_tier"`
	CreatedAt    time.Time `json:"created_at"`
}

// rescheduleRequest carries the new start time
type rescheduleRequest struct {
	StartsAt time.Time `json:"starts_at"`
}

// outcomeRequest carries the recorded outcome, completed or no_show
type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

func newBookingResponse(b booking.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		EventType:    b.EventType,
		StartsAt:     b.StartsAt,
		Timezone:     b.Timezone,
		InviteeName:  b.InviteeName,
		InviteeEmail: b.InviteeEmail,
		Topic:        b.Topic,
		Notes:        b.Notes,
		RepeatBooker: b.RepeatBooker,
		Status:       b.Status.String(),
		RiskScore:    b.RiskScore,
		RiskTier:     b.RiskTier.String(),
		CreatedAt:    b.CreatedAt,
	}
}

// postBooking handles POST /v1/bookings
func postBooking(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b, err := bookingService.Create(r.Context(), booking.CreateRequest{
			EventType:    br.EventType,
			StartsAt:     br.StartsAt,
			Timezone:     br.Timezone,
			InviteeName:  br.InviteeName,
			InviteeEmail: br.InviteeEmail,
			Topic:        br.Topic,
			Notes:        br.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newBookingResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getBookings handles GET /v1/bookings
func getBookings(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		all, err := bookingService.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result := make([]bookingResponse, 0, len(all))
		for _, b := range all {
			result = append(result, newBookingResponse(b))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getBooking handles GET /v1/bookings/:id
func getBooking(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookingService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newBookingResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// cancelBooking handles POST /v1/bookings/:id/cancel
func cancelBooking(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := bookingService.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err, http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// rescheduleBooking handles POST /v1/bookings/:id/reschedule
func rescheduleBooking(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rr rescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&rr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b, err := bookingService.Reschedule(r.Context(), chi.URLParam(r, "id"), rr.StartsAt)
		if err != nil {
			writeError(w, err, http.StatusConflict)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newBookingResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// recordOutcome handles POST /v1/bookings/:id/outcome
func recordOutcome(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var or outcomeRequest
		if err := json.NewDecoder(r.Body).Decode(&or); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		outcome := booking.NewStatus(or.Outcome)
		if !outcome.IsOutcome() {
			http.Error(w, "outcome must be completed or no_show", http.StatusBadRequest)
			return
		}

		if err := bookingService.RecordOutcome(r.Context(), chi.URLParam(r, "id"), outcome); err != nil {
			writeError(w, err, http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// rescoreBooking handles POST /v1/bookings/:id/rescore
func rescoreBooking(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookingService.Rescore(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newBookingResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getAccuracyReport handles GET /v1/reports/risk-accuracy
func getAccuracyReport(bookingService booking.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		days := 90
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		report, err := bookingService.AccuracyReport(r.Context(), time.Now().AddDate(0, 0, -days))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
