package recommend

import (
	"time"

	"github.com/marcelsud/booking-pulse/booking"
)

/* Heatmap is a pair of frequency tables over historical bookings,
 * indexed by hour and by (weekday, hour)
 * Derived data: built per query, never persisted beyond the cache
 */
type Heatmap struct {
	HourCounts    [24]int    `json:"hour_counts"`
	DayHourCounts [7][24]int `json:"day_hour_counts"`
	Total         int        `json:"total"`
}

// BuildHeatmap folds booking occurrences into the frequency tables.
func BuildHeatmap(occurrences []booking.Occurrence) Heatmap {
	var hm Heatmap
	for _, occ := range occurrences {
		if occ.Hour < 0 || occ.Hour > 23 || occ.Day < time.Sunday || occ.Day > time.Saturday {
			continue
		}
		hm.HourCounts[occ.Hour]++
		hm.DayHourCounts[occ.Day][occ.Hour]++
		hm.Total++
	}
	return hm
}

// MaxHourCount returns the highest single-hour frequency.
func (hm Heatmap) MaxHourCount() int {
	max := 0
	for _, c := range hm.HourCounts {
		if c > max {
			max = c
		}
	}
	return max
}

// DayCounts sums each weekday's bookings across hours.
func (hm Heatmap) DayCounts() [7]int {
	var days [7]int
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			days[d] += hm.DayHourCounts[d][h]
		}
	}
	return days
}

/* TopDays and TopHours pick by raw frequency, descending
 * Ties break by natural enumeration order (Sunday first, hour 0 first):
 * the scan only replaces the current best on a strictly greater count
 */

// TopDays returns the n busiest weekdays.
func (hm Heatmap) TopDays(n int) []time.Weekday {
	counts := hm.DayCounts()
	picked := [7]bool{}
	var top []time.Weekday
	for len(top) < n {
		best, bestCount := -1, -1
		for d := 0; d < 7; d++ {
			if !picked[d] && counts[d] > bestCount {
				best, bestCount = d, counts[d]
			}
		}
		picked[best] = true
		top = append(top, time.Weekday(best))
	}
	return top
}

// TopHours returns the n busiest hours.
func (hm Heatmap) TopHours(n int) []int {
	picked := [24]bool{}
	var top []int
	for len(top) < n {
		best, bestCount := -1, -1
		for h := 0; h < 24; h++ {
			if !picked[h] && hm.HourCounts[h] > bestCount {
				best, bestCount = h, hm.HourCounts[h]
			}
		}
		picked[best] = true
		top = append(top, best)
	}
	return top
}
