package recommend

import (
	"context"
	"math"
	"time"

	"github.com/marcelsud/booking-pulse/booking"
	"github.com/marcelsud/booking-pulse/rules"
)

/* The recommender never fails: a query error or a thin sample is a
 * defined fallback path to static defaults, not an error. Worst case
 * the caller gets a default recommendation
 */

// Label marks how strongly an hour is suggested.
type Label int

const (
	None Label = iota
	Recommended
	Popular
)

// String returns the string representation of the label.
func (l Label) String() string {
	switch l {
	case Recommended:
		return "recommended"
	case Popular:
		return "popular"
	default:
		return ""
	}
}

// MarshalJSON renders the label as its string form, null when absent.
func (l Label) MarshalJSON() ([]byte, error) {
	if l == None {
		return []byte("null"), nil
	}
	return []byte(`"` + l.String() + `"`), nil
}

// Slot is the recommendation for one hour of the requested date.
type Slot struct {
	Hour  int   `json:"hour"`
	Score int   `json:"score"`
	Label Label `json:"label"`
}

// Source tags whether a summary came from real data or defaults.
type Source int

const (
	FromData Source = iota + 1
	FromDefaults
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case FromData:
		return "data"
	case FromDefaults:
		return "defaults"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the source as its string form.
func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Summary is the dashboard reduction of the heatmap.
type Summary struct {
	BestDays   []time.Weekday `json:"best_days"`
	BestHours  []int          `json:"best_hours"`
	Source     Source         `json:"source"`
	SampleSize int            `json:"sample_size"`
}

// UseCase defines the recommendation operations.
type UseCase interface {
	ForDate(ctx context.Context, date time.Time, timezone string, eventTypes []string) [24]Slot
	Summary(ctx context.Context, eventTypes []string) Summary
}

/* Cache holds heatmap snapshots briefly so repeated availability
 * queries do not rebuild the 90-day aggregate each time
 * A miss or a cache error falls through to the store
 */
type Cache interface {
	Get(ctx context.Context, key string) (Heatmap, bool, error)
	Set(ctx context.Context, key string, hm Heatmap) error
}

type Service struct {
	History booking.HistoryReader
	Cache   Cache
	Tuning  rules.Recommend
}

// NewService creates a recommender. Cache may be nil.
func NewService(history booking.HistoryReader, cache Cache, tuning rules.Recommend) *Service {
	return &Service{
		History: history,
		Cache:   cache,
		Tuning:  tuning,
	}
}

// ForDate scores every hour of the requested date. Data-driven when
// the trailing window holds enough bookings, static defaults otherwise.
func (s *Service) ForDate(ctx context.Context, date time.Time, timezone string, eventTypes []string) [24]Slot {
	targetDay := localWeekday(date, timezone)

	hm, ok := s.heatmap(ctx, eventTypes)
	if !ok {
		return s.fallback(targetDay)
	}

	var slots [24]Slot
	maxHour := hm.MaxHourCount()
	perDay := float64(hm.Total) / 7
	for h := 0; h < 24; h++ {
		overall := float64(hm.HourCounts[h]) / float64(maxHour) * s.Tuning.OverallWeight
		day := float64(hm.DayHourCounts[targetDay][h]) / perDay * s.Tuning.DayWeight
		score := int(math.Round(overall + day))
		if score > 100 {
			score = 100
		}
		slots[h] = Slot{Hour: h, Score: score, Label: s.label(score)}
	}
	return slots
}

// Summary reduces the heatmap to the top 3 days and top 4 hours.
func (s *Service) Summary(ctx context.Context, eventTypes []string) Summary {
	hm, ok := s.heatmap(ctx, eventTypes)
	if !ok {
		return Summary{
			BestDays:   append([]time.Weekday(nil), s.Tuning.FallbackDays...),
			BestHours:  append([]int(nil), s.Tuning.FallbackHours...),
			Source:     FromDefaults,
			SampleSize: hm.Total,
		}
	}
	return Summary{
		BestDays:   hm.TopDays(3),
		BestHours:  hm.TopHours(4),
		Source:     FromData,
		SampleSize: hm.Total,
	}
}

// heatmap returns the trailing-window snapshot and whether it is large
// enough to score from.
func (s *Service) heatmap(ctx context.Context, eventTypes []string) (Heatmap, bool) {
	key := cacheKey(eventTypes)
	if s.Cache != nil {
		if hm, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
			return hm, hm.Total >= s.Tuning.MinSample
		}
	}

	since := time.Now().AddDate(0, 0, -s.Tuning.WindowDays)
	occurrences, err := s.History.Occurrences(ctx, since, eventTypes)
	if err != nil {
		return Heatmap{}, false
	}

	hm := BuildHeatmap(occurrences)
	if s.Cache != nil {
		// best effort; a failed write only costs the next rebuild
		_ = s.Cache.Set(ctx, key, hm)
	}
	return hm, hm.Total >= s.Tuning.MinSample
}

func (s *Service) label(score int) Label {
	switch {
	case score >= s.Tuning.PopularCutoff:
		return Popular
	case score >= s.Tuning.RecommendedCutoff:
		return Recommended
	default:
		return None
	}
}

// fallback is the static industry-default table.
func (s *Service) fallback(targetDay time.Weekday) [24]Slot {
	goodDay := false
	for _, d := range s.Tuning.FallbackDays {
		if d == targetDay {
			goodDay = true
			break
		}
	}

	var slots [24]Slot
	for h := 0; h < 24; h++ {
		goodHour := false
		for _, fh := range s.Tuning.FallbackHours {
			if fh == h {
				goodHour = true
				break
			}
		}

		slot := Slot{Hour: h}
		switch {
		case goodDay && goodHour:
			slot.Score, slot.Label = s.Tuning.FallbackBoth, Popular
		case goodHour:
			slot.Score, slot.Label = s.Tuning.FallbackHourOnly, Recommended
		case goodDay:
			slot.Score = s.Tuning.FallbackDayOnly
		}
		slots[h] = slot
	}
	return slots
}

func localWeekday(date time.Time, timezone string) time.Weekday {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return date.In(loc).Weekday()
}

func cacheKey(eventTypes []string) string {
	if len(eventTypes) == 0 {
		return "all"
	}
	key := eventTypes[0]
	for _, et := range eventTypes[1:] {
		key += "," + et
	}
	return key
}
