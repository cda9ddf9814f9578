package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/booking-pulse/recommend"
)

/* Availability is an external collaborator: open intervals arrive
 * already computed, this layer only annotates them with popularity
 * scores for the slot-picking UI
 */

// Interval is one open time range yielded by the calendar provider.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Provider yields the open intervals for a date, already merged
// across calendars.
type Provider interface {
	OpenSlots(ctx context.Context, date time.Time, timezone string, eventTypes []string) ([]Interval, error)
}

// Slot is an open interval annotated with its recommendation.
type Slot struct {
	Interval
	Score int             `json:"score"`
	Label recommend.Label `json:"label"`
}

// UseCase defines the availability query operations.
type UseCase interface {
	Slots(ctx context.Context, date time.Time, timezone string, eventTypes []string) ([]Slot, error)
}

type Service struct {
	Provider    Provider
	Recommender recommend.UseCase
}

// NewService creates an availability service with dependency injection.
func NewService(provider Provider, recommender recommend.UseCase) *Service {
	return &Service{
		Provider:    provider,
		Recommender: recommender,
	}
}

// Slots returns the provider's open intervals annotated with hour
// recommendations. Provider failures surface; recommendation never fails.
func (s *Service) Slots(ctx context.Context, date time.Time, timezone string, eventTypes []string) ([]Slot, error) {
	intervals, err := s.Provider.OpenSlots(ctx, date, timezone, eventTypes)
	if err != nil {
		return nil, fmt.Errorf("loading open slots: %w", err)
	}

	hours := s.Recommender.ForDate(ctx, date, timezone, eventTypes)

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	slots := make([]Slot, 0, len(intervals))
	for _, interval := range intervals {
		rec := hours[interval.Start.In(loc).Hour()]
		slots = append(slots, Slot{
			Interval: interval,
			Score:    rec.Score,
			Label:    rec.Label,
		})
	}
	return slots, nil
}
