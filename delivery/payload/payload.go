package payload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// eventNamePattern validates event names: hierarchical, full-stop delimited
var eventNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

/* Envelope is the signed wire format sent to subscribers
 * The signature covers the exact serialized bytes of this structure,
 * and the timestamp lets receivers reject replays if they choose to
 * check freshness
 */
type Envelope struct {
	// Event is the full-stop delimited lifecycle event name
	Event string `json:"event"`

	// Timestamp is the ISO 8601 timestamp of when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Data is the event payload
	Data json.RawMessage `json:"data"`
}

// New creates an envelope for the given event, stamped now.
func New(event string, data interface{}) (Envelope, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshaling data: %w", err)
	}

	env := Envelope{
		Event:     event,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}

	if err := env.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("validating envelope: %w", err)
	}

	return env, nil
}

// Validate validates the envelope structure.
func (e Envelope) Validate() error {
	if e.Event == "" {
		return fmt.Errorf("event is required")
	}
	if !eventNamePattern.MatchString(e.Event) {
		return fmt.Errorf("event must be hierarchical and contain only [a-zA-Z0-9_.]: %s", e.Event)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if len(e.Data) == 0 {
		return fmt.Errorf("data is required")
	}
	if !json.Valid(e.Data) {
		return fmt.Errorf("data must be valid JSON")
	}
	return nil
}

/* Bytes returns the canonical JSON encoding of the envelope
 * These are the bytes that get signed and posted; callers must not
 * re-serialize
 */
func (e Envelope) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

// Parse parses a JSON body into an Envelope.
func Parse(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshaling envelope: %w", err)
	}

	if err := env.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("validating envelope: %w", err)
	}

	return env, nil
}
