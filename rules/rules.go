package rules

import (
	"fmt"
	"time"
)

/* Rules holds every tunable scoring table in one place
 * Weights are configuration, not logic: swapping a table must never
 * require touching the algorithms that consume it
 */

// Risk is the additive no-show scoring table and the tier thresholds.
type Risk struct {
	Baseline int `yaml:"baseline"`

	// Lead-time brackets, evaluated tightest first; exactly one fires
	LeadUnder2h  int `yaml:"lead_under_2h"`
	LeadUnder6h  int `yaml:"lead_under_6h"`
	LeadUnder24h int `yaml:"lead_under_24h"`
	LeadOver7d   int `yaml:"lead_over_7d"`

	FridayAfternoon int `yaml:"friday_afternoon"`
	MondayMorning   int `yaml:"monday_morning"`
	EarlyMorning    int `yaml:"early_morning"`
	LateAfternoon   int `yaml:"late_afternoon"`

	NoTopic      int `yaml:"no_topic"`
	NoNotes      int `yaml:"no_notes"`
	RepeatBooker int `yaml:"repeat_booker"`

	// Tier thresholds, evaluated highest first
	HighTier   int `yaml:"high_tier"`
	MediumTier int `yaml:"medium_tier"`
}

// Recommend is the tuning table for the popularity recommender.
type Recommend struct {
	WindowDays int `yaml:"window_days"`
	MinSample  int `yaml:"min_sample"`

	// Blend weights for the data-driven score (60/40 by default)
	OverallWeight float64 `yaml:"overall_weight"`
	DayWeight     float64 `yaml:"day_weight"`

	PopularCutoff     int `yaml:"popular_cutoff"`
	RecommendedCutoff int `yaml:"recommended_cutoff"`

	// Static fallback table used when history is thin
	FallbackDays     []time.Weekday `yaml:"fallback_days"`
	FallbackHours    []int          `yaml:"fallback_hours"`
	FallbackBoth     int            `yaml:"fallback_both"`
	FallbackHourOnly int            `yaml:"fallback_hour_only"`
	FallbackDayOnly  int            `yaml:"fallback_day_only"`
}

// Rules is the full set of tunable tables.
type Rules struct {
	Risk      Risk      `yaml:"risk"`
	Recommend Recommend `yaml:"recommend"`
}

// Defaults returns the compiled-in tables.
func Defaults() Rules {
	return Rules{
		Risk: Risk{
			Baseline:        20,
			LeadUnder2h:     30,
			LeadUnder6h:     20,
			LeadUnder24h:    10,
			LeadOver7d:      8,
			FridayAfternoon: 15,
			MondayMorning:   5,
			EarlyMorning:    10,
			LateAfternoon:   8,
			NoTopic:         12,
			NoNotes:         5,
			RepeatBooker:    -15,
			HighTier:        65,
			MediumTier:      50,
		},
		Recommend: Recommend{
			WindowDays:        90,
			MinSample:         30,
			OverallWeight:     60,
			DayWeight:         40,
			PopularCutoff:     70,
			RecommendedCutoff: 45,
			FallbackDays:      []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
			FallbackHours:     []int{10, 11, 13, 14},
			FallbackBoth:      75,
			FallbackHourOnly:  50,
			FallbackDayOnly:   30,
		},
	}
}

// Validate checks that the tables are internally consistent.
func (r Rules) Validate() error {
	if r.Risk.Baseline < 0 || r.Risk.Baseline > 100 {
		return fmt.Errorf("risk baseline must be within [0,100], got %d", r.Risk.Baseline)
	}
	if r.Risk.HighTier <= r.Risk.MediumTier {
		return fmt.Errorf("high tier threshold (%d) must be above medium (%d)", r.Risk.HighTier, r.Risk.MediumTier)
	}
	if r.Recommend.WindowDays <= 0 {
		return fmt.Errorf("recommend window_days must be positive, got %d", r.Recommend.WindowDays)
	}
	if r.Recommend.MinSample <= 0 {
		return fmt.Errorf("recommend min_sample must be positive, got %d", r.Recommend.MinSample)
	}
	if r.Recommend.OverallWeight < 0 || r.Recommend.DayWeight < 0 {
		return fmt.Errorf("recommend blend weights cannot be negative")
	}
	if r.Recommend.PopularCutoff <= r.Recommend.RecommendedCutoff {
		return fmt.Errorf("popular cutoff (%d) must be above recommended (%d)", r.Recommend.PopularCutoff, r.Recommend.RecommendedCutoff)
	}
	for _, d := range r.Recommend.FallbackDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid fallback day: %d", d)
		}
	}
	for _, h := range r.Recommend.FallbackHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("invalid fallback hour: %d", h)
		}
	}
	return nil
}
