package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marcelsud/booking-pulse/availability"
	"github.com/marcelsud/booking-pulse/recommend"
)

// slotResponse represents an open interval with its recommendation
type slotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Score int       `json:"score"`
	Label string    `json:"label,omitempty"`
}

/* Date handling: the date query parameter is interpreted in the
 * requested timezone, so "2026-09-04" in Auckland and the same date in
 * Los Angeles can land on different weekdays
 */
func parseDateQuery(r *http.Request) (time.Time, string, error) {
	timezone := r.URL.Query().Get("timezone")
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := time.Now().In(loc)
		return now, timezone, nil
	}

	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, "", err
	}
	return date, timezone, nil
}

// getSlots handles GET /v1/slots
func getSlots(availabilityService availability.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date, timezone, err := parseDateQuery(r)
		if err != nil {
			http.Error(w, "date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		eventTypes := r.URL.Query()["event_type"]

		slots, err := availabilityService.Slots(r.Context(), date, timezone, eventTypes)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result := make([]slotResponse, 0, len(slots))
		for _, s := range slots {
			result = append(result, slotResponse{
				Start: s.Start,
				End:   s.End,
				Score: s.Score,
				Label: s.Label.String(),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getRecommendations handles GET /v1/recommendations
func getRecommendations(recommender recommend.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date, timezone, err := parseDateQuery(r)
		if err != nil {
			http.Error(w, "date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		eventTypes := r.URL.Query()["event_type"]

		hours := recommender.ForDate(r.Context(), date, timezone, eventTypes)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hours); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getRecommendationSummary handles GET /v1/recommendations/summary
func getRecommendationSummary(recommender recommend.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventTypes := r.URL.Query()["event_type"]

		summary := recommender.Summary(r.Context(), eventTypes)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
