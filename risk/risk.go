package risk

import (
	"time"

	"github.com/marcelsud/booking-pulse/rules"
)

/* The scorer is a pure function over a weights table
 * No I/O, no side effects: the caller persists the result
 */

// Tier is the coarse no-show risk bucket derived from the numeric score.
type Tier int

const (
	Low Tier = iota + 1
	Medium
	High
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// NewTier creates a Tier from a string.
func NewTier(s string) Tier {
	switch s {
	case "low":
		return Low
	case "medium":
		return Medium
	case "high":
		return High
	default:
		return Low
	}
}

// MarshalJSON renders the tier as its string form.
func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Factors are the booking attributes the scorer reads.
// Weekday and Hour are in the booking's local timezone.
type Factors struct {
	LeadTime     time.Duration
	Weekday      time.Weekday
	Hour         int
	RepeatBooker bool
	HasTopic     bool
	HasNotes     bool
}

// Scorer applies a weights table to booking factors.
type Scorer struct {
	table rules.Risk
}

// NewScorer creates a scorer over the given weights table.
func NewScorer(table rules.Risk) Scorer {
	return Scorer{table: table}
}

// Score returns the no-show risk in [0,100]. Total and deterministic:
// malformed input (negative lead time, out-of-range hour) is clamped,
// never rejected.
func (s Scorer) Score(f Factors) int {
	lead := f.LeadTime
	if lead < 0 {
		lead = 0
	}

	score := s.table.Baseline

	// Ordered tightest-first so exactly one bracket applies
	switch {
	case lead < 2*time.Hour:
		score += s.table.LeadUnder2h
	case lead < 6*time.Hour:
		score += s.table.LeadUnder6h
	case lead < 24*time.Hour:
		score += s.table.LeadUnder24h
	case lead > 7*24*time.Hour:
		score += s.table.LeadOver7d
	}

	if f.Weekday == time.Friday && f.Hour >= 14 {
		score += s.table.FridayAfternoon
	}
	if f.Weekday == time.Monday && f.Hour < 10 {
		score += s.table.MondayMorning
	}

	// An hour cannot be both early morning and late afternoon
	if f.Hour < 8 {
		score += s.table.EarlyMorning
	} else if f.Hour >= 16 {
		score += s.table.LateAfternoon
	}

	if !f.HasTopic {
		score += s.table.NoTopic
	}
	if !f.HasNotes {
		score += s.table.NoNotes
	}
	if f.RepeatBooker {
		score += s.table.RepeatBooker
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// TierFor maps a score to its tier via the threshold ladder,
// evaluated highest first.
func (s Scorer) TierFor(score int) Tier {
	switch {
	case score >= s.table.HighTier:
		return High
	case score >= s.table.MediumTier:
		return Medium
	default:
		return Low
	}
}

// Evaluate scores the factors and assigns the tier in one call.
func (s Scorer) Evaluate(f Factors) (int, Tier) {
	score := s.Score(f)
	return score, s.TierFor(score)
}
