package chi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/subscription"
)

// subscriptionRequest represents the incoming subscription payload
type subscriptionRequest struct {
	TargetURL  string   `json:"target_url"`
	EventTypes []string `json:"event_types"`
}

/* subscriptionResponse represents a subscription in the API
 * Secret is only populated in the creation response; reads never
 * return it again
 */
type subscriptionResponse struct {
	ID         string    `json:"id"`
	TargetURL  string    `json:"target_url"`
	EventTypes []string  `json:"event_types"`
	Active     bool      `json:"active"`
	Secret     string    `json:"secret,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// eventTypesRequest carries the replacement event set
type eventTypesRequest struct {
	EventTypes []string `json:"event_types"`
}

// activeRequest carries the pause/resume toggle
type activeRequest struct {
	Active bool `json:"active"`
}

// attemptResponse represents one delivery attempt in the API
type attemptResponse struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	StatusCode *int      `json:"status_code"`
	Body       string    `json:"body,omitempty"`
	Success    bool      `json:"success"`
	CreatedAt  time.Time `json:"created_at"`
}

func newSubscriptionResponse(sub subscription.Subscription, withSecret bool) subscriptionResponse {
	events := make([]string, 0, len(sub.EventTypes))
	for _, e := range sub.EventTypes {
		events = append(events, e.String())
	}
	resp := subscriptionResponse{
		ID:         sub.ID,
		TargetURL:  sub.TargetURL,
		EventTypes: events,
		Active:     sub.Active,
		CreatedAt:  sub.CreatedAt,
	}
	if withSecret {
		resp.Secret = sub.Secret
	}
	return resp
}

// postSubscription handles POST /v1/subscriptions
func postSubscription(subscriptionService subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sr subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sub, err := subscriptionService.Create(r.Context(), sr.TargetURL, sr.EventTypes)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newSubscriptionResponse(sub, true)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getSubscriptions handles GET /v1/subscriptions
func getSubscriptions(subscriptionService subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := subscriptionService.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result := make([]subscriptionResponse, 0, len(all))
		for _, sub := range all {
			result = append(result, newSubscriptionResponse(sub, false))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getSubscription handles GET /v1/subscriptions/:id
func getSubscription(subscriptionService subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := subscriptionService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newSubscriptionResponse(sub, false)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// putSubscriptionEvents handles PUT /v1/subscriptions/:id/events
func putSubscriptionEvents(subscriptionService subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var er eventTypesRequest
		if err := json.NewDecoder(r.Body).Decode(&er); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := subscriptionService.UpdateEvents(r.Context(), chi.URLParam(r, "id"), er.EventTypes); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// putSubscriptionActive handles PUT /v1/subscriptions/:id/active
func putSubscriptionActive(subscriptionService subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ar activeRequest
		if err := json.NewDecoder(r.Body).Decode(&ar); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := subscriptionService.SetActive(r.Context(), chi.URLParam(r, "id"), ar.Active); err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// getSubscriptionAttempts handles GET /v1/subscriptions/:id/attempts
func getSubscriptionAttempts(attempts delivery.Reader) http.Handler {
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

		log, err := attempts.ListBySubscription(r.Context(), chi.URLParam(r, "id"), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result := make([]attemptResponse, 0, len(log))
		for _, a := range log {
			result = append(result, attemptResponse{
				ID:         a.ID,
				Event:      a.Event.String(),
				StatusCode: a.StatusCode,
				Body:       a.ResponseBody,
				Success:    a.Success,
				CreatedAt:  a.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
