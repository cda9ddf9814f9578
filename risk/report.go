package risk

/* Accuracy reporting compares the tier predicted at booking time
 * against the outcome recorded afterwards. A true positive is a
 * high-tier prediction that ended as a no-show; medium-tier
 * predictive value is deliberately not measured
 */

// Outcome pairs the tier stored at booking time with the final result.
type Outcome struct {
	Tier   Tier
	NoShow bool
}

// Report summarises scorer precision over a set of resolved bookings.
type Report struct {
	Sample         int     `json:"sample"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	Precision      float64 `json:"precision"`
}

// Precision computes the high-tier precision report.
// Records must only contain resolved bookings (completed or no-show).
func Precision(records []Outcome) Report {
	r := Report{Sample: len(records)}
	for _, rec := range records {
		if rec.Tier != High {
			continue
		}
		if rec.NoShow {
			r.TruePositives++
		} else {
			r.FalsePositives++
		}
	}
	if positives := r.TruePositives + r.FalsePositives; positives > 0 {
		r.Precision = float64(r.TruePositives) / float64(positives)
	}
	return r
}
