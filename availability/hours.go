package availability

import (
	"context"
	"time"
)

/* HoursProvider is the built-in calendar: a fixed business-hours window
 * sliced into equal slots. Deployments with real calendar integrations
 * swap in their own Provider
 */
type HoursProvider struct {
	OpenHour   int
	CloseHour  int
	SlotLength time.Duration
}

// NewHoursProvider creates a provider open between the given local hours.
func NewHoursProvider(openHour, closeHour int) *HoursProvider {
	return &HoursProvider{
		OpenHour:   openHour,
		CloseHour:  closeHour,
		SlotLength: time.Hour,
	}
}

// OpenSlots slices the business-hours window of the requested date.
func (p *HoursProvider) OpenSlots(ctx context.Context, date time.Time, timezone string, eventTypes []string) ([]Interval, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	local := date.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), p.OpenHour, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), p.CloseHour, 0, 0, 0, loc)

	var intervals []Interval
	for cur := start; cur.Add(p.SlotLength).Before(end) || cur.Add(p.SlotLength).Equal(end); cur = cur.Add(p.SlotLength) {
		intervals = append(intervals, Interval{Start: cur, End: cur.Add(p.SlotLength)})
	}
	return intervals, nil
}
