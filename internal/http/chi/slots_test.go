package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/booking-pulse/availability"
	"github.com/marcelsud/booking-pulse/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recommenderStub struct {
	slots   [24]recommend.Slot
	summary recommend.Summary

	lastDate     time.Time
	lastTimezone string
}

func (s *recommenderStub) ForDate(ctx context.Context, date time.Time, timezone string, eventTypes []string) [24]recommend.Slot {
	s.lastDate = date
	s.lastTimezone = timezone
	return s.slots
}

func (s *recommenderStub) Summary(ctx context.Context, eventTypes []string) recommend.Summary {
	return s.summary
}

type availabilityStub struct {
	slots []availability.Slot
	err   error
}

func (s *availabilityStub) Slots(ctx context.Context, date time.Time, timezone string, eventTypes []string) ([]availability.Slot, error) {
	return s.slots, s.err
}

func TestGetSlots(t *testing.T) {
	t.Run("returns annotated open slots", func(t *testing.T) {
		start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
		stub := &availabilityStub{slots: []availability.Slot{
			{
				Interval: availability.Interval{Start: start, End: start.Add(30 * time.Minute)},
				Score:    80,
				Label:    recommend.Popular,
			},
		}}

		h := Handlers(context.Background(), nil, nil, stub, nil, nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/slots?date=2026-09-02&timezone=UTC", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var results []slotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, 80, results[0].Score)
		assert.Equal(t, "popular", results[0].Label)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		h := Handlers(context.Background(), nil, nil, &availabilityStub{}, nil, nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/slots?date=tomorrow", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRecommendations(t *testing.T) {
	t.Run("scores every hour of the day", func(t *testing.T) {
		stub := &recommenderStub{}
		for h := 0; h < 24; h++ {
			stub.slots[h] = recommend.Slot{Hour: h}
		}
		stub.slots[10] = recommend.Slot{Hour: 10, Score: 85, Label: recommend.Popular}

		h := Handlers(context.Background(), nil, nil, nil, stub, nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations?date=2026-09-02&timezone=America/New_York", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var results []struct {
			Hour  int     `json:"hour"`
			Score int     `json:"score"`
			Label *string `json:"label"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 24)
		assert.Equal(t, 85, results[10].Score)
		require.NotNil(t, results[10].Label)
		assert.Equal(t, "popular", *results[10].Label)
		assert.Nil(t, results[0].Label)
		assert.Equal(t, "America/New_York", stub.lastTimezone)
	})
}

func TestGetRecommendationSummary(t *testing.T) {
	t.Run("returns the dashboard summary", func(t *testing.T) {
		stub := &recommenderStub{summary: recommend.Summary{
			BestDays:   []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
			BestHours:  []int{10, 11, 13, 14},
			Source:     recommend.FromDefaults,
			SampleSize: 12,
		}}

		h := Handlers(context.Background(), nil, nil, nil, stub, nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations/summary", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"defaults"`)

		var result map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, float64(12), result["sample_size"])
	})
}
