package payload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env, err := New("booking.created", map[string]string{"booking_id": "b-1"})
		require.NoError(t, err)
		assert.Equal(t, "booking.created", env.Event)
		assert.False(t, env.Timestamp.IsZero())
		assert.JSONEq(t, `{"booking_id":"b-1"}`, string(env.Data))
	})

	t.Run("error - invalid event name", func(t *testing.T) {
		_, err := New("booking created!", map[string]string{"a": "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hierarchical")
	})
}

func TestBytesRoundTrip(t *testing.T) {
	env, err := New("booking.cancelled", map[string]string{"booking_id": "b-2"})
	require.NoError(t, err)

	body, err := env.Bytes()
	require.NoError(t, err)

	parsed, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, env.Event, parsed.Event)
	assert.JSONEq(t, string(env.Data), string(parsed.Data))

	// timestamp survives as ISO 8601
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	var ts string
	require.NoError(t, json.Unmarshal(raw["timestamp"], &ts))
	_, err = time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
}

func TestParse(t *testing.T) {
	t.Run("error - missing data", func(t *testing.T) {
		_, err := Parse([]byte(`{"event":"booking.created","timestamp":"2025-06-01T10:00:00Z"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data is required")
	})

	t.Run("error - not json", func(t *testing.T) {
		_, err := Parse([]byte(`not json`))
		require.Error(t, err)
	})
}
