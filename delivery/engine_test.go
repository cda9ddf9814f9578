package delivery_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/delivery/payload"
	"github.com/marcelsud/booking-pulse/delivery/signature"
	"github.com/marcelsud/booking-pulse/subscription"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLog is a thread-safe in-memory attempt log.
type memoryLog struct {
	mu       sync.Mutex
	attempts []delivery.Attempt
}

func (m *memoryLog) Append(_ context.Context, attempt delivery.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attempt)
	return nil
}

func (m *memoryLog) All() []delivery.Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]delivery.Attempt, len(m.attempts))
	copy(out, m.attempts)
	return out
}

func (m *memoryLog) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

// staticSource serves a fixed subscription snapshot.
type staticSource struct {
	subs []subscription.Subscription
}

func (s *staticSource) ListActive(context.Context) ([]subscription.Subscription, error) {
	return s.subs, nil
}

func newSub(t *testing.T, targetURL string, events ...subscription.EventType) subscription.Subscription {
	t.Helper()
	secret, err := signature.GenerateSecret(32)
	require.NoError(t, err)
	return subscription.Subscription{
		ID:         "sub-" + targetURL[len(targetURL)-4:],
		TargetURL:  targetURL,
		EventTypes: events,
		Active:     true,
		Secret:     secret.String(),
	}
}

// fastBackoff keeps the square shape but in milliseconds so retry
// tests stay quick while elapsed time remains measurable.
func fastBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * 10 * time.Millisecond
}

func newEngine(source delivery.SubscriptionSource, log delivery.Writer) *delivery.Engine {
	return delivery.NewEngine(source, log, zerolog.Nop(), delivery.WithBackoff(fastBackoff))
}

func TestNotify(t *testing.T) {
	t.Run("server errors exhaust the attempt budget", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		start := time.Now()
		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()
		elapsed := time.Since(start)

		assert.Equal(t, int32(3), hits.Load())
		attempts := log.All()
		require.Len(t, attempts, 3)
		for _, a := range attempts {
			assert.False(t, a.Success)
			require.NotNil(t, a.StatusCode)
			assert.Equal(t, http.StatusInternalServerError, *a.StatusCode)
		}
		// waits of 1x and 4x the base unit between the three attempts
		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	})

	t.Run("client error is permanent - one attempt, no retry", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Error(w, "no such hook", http.StatusNotFound)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		assert.Equal(t, int32(1), hits.Load())
		attempts := log.All()
		require.Len(t, attempts, 1)
		assert.False(t, attempts[0].Success)
		require.NotNil(t, attempts[0].StatusCode)
		assert.Equal(t, http.StatusNotFound, *attempts[0].StatusCode)
		assert.Contains(t, attempts[0].ResponseBody, "no such hook")
	})

	t.Run("429 is transient", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("success on the second attempt stops the cycle", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		assert.Equal(t, int32(2), hits.Load())
		attempts := log.All()
		require.Len(t, attempts, 2)
		assert.False(t, attempts[0].Success)
		assert.True(t, attempts[1].Success)
	})

	t.Run("network failure records a null status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // unreachable target

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		attempts := log.All()
		require.Len(t, attempts, 3)
		for _, a := range attempts {
			assert.False(t, a.Success)
			assert.Nil(t, a.StatusCode)
			assert.NotEmpty(t, a.ResponseBody, "network error message is kept in the body field")
		}
	})

	t.Run("payload is signed over the exact posted bytes", func(t *testing.T) {
		sub := subscription.Subscription{}
		received := make(chan struct {
			body []byte
			sig  string
			evt  string
		}, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			received <- struct {
				body []byte
				sig  string
				evt  string
			}{body, r.Header.Get(delivery.HeaderSignature), r.Header.Get(delivery.HeaderEvent)}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		sub = newSub(t, srv.URL, subscription.Rescheduled)
		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{sub}}, log)
		defer engine.Close()

		engine.Notify("booking.rescheduled", map[string]string{"booking_id": "b-9"})
		engine.Wait()

		got := <-received
		assert.Equal(t, "booking.rescheduled", got.evt)

		secret, err := signature.ParseSecret(sub.Secret)
		require.NoError(t, err)
		assert.True(t, signature.Verify(secret, got.body, got.sig))

		env, err := payload.Parse(got.body)
		require.NoError(t, err)
		assert.Equal(t, "booking.rescheduled", env.Event)
		assert.JSONEq(t, `{"booking_id":"b-9"}`, string(env.Data))
	})

	t.Run("one failing subscriber does not block another", func(t *testing.T) {
		fail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer fail.Close()
		ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ok.Close()

		failSub := newSub(t, fail.URL, subscription.Created)
		failSub.ID = "sub-fail"
		okSub := newSub(t, ok.URL, subscription.Created)
		okSub.ID = "sub-ok"

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{failSub, okSub}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		perSub := map[string][]delivery.Attempt{}
		for _, a := range log.All() {
			perSub[a.SubscriptionID] = append(perSub[a.SubscriptionID], a)
		}
		assert.Len(t, perSub["sub-fail"], 3)
		require.Len(t, perSub["sub-ok"], 1)
		assert.True(t, perSub["sub-ok"][0].Success)
	})

	t.Run("uninterested subscriptions are skipped silently", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Cancelled)}}, log)
		defer engine.Close()

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		assert.Equal(t, int32(0), hits.Load())
		assert.Zero(t, log.Count())
	})

	t.Run("unknown event is dropped", func(t *testing.T) {
		log := &memoryLog{}
		engine := newEngine(&staticSource{}, log)
		defer engine.Close()

		engine.Notify("booking.exploded", map[string]string{"booking_id": "b-1"})
		engine.Wait()

		assert.Zero(t, log.Count())
	})

	t.Run("at-least-once - identical notifies run full independent cycles", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := newEngine(&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}}, log)
		defer engine.Close()

		data := map[string]string{"booking_id": "b-1"}
		engine.Notify("booking.created", data)
		engine.Notify("booking.created", data)
		engine.Wait()

		assert.Equal(t, int32(2), hits.Load())
		assert.Equal(t, 2, log.Count())
	})
}

func TestClose(t *testing.T) {
	t.Run("shutdown interrupts a pending retry wait", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		log := &memoryLog{}
		engine := delivery.NewEngine(
			&staticSource{subs: []subscription.Subscription{newSub(t, srv.URL, subscription.Created)}},
			log,
			zerolog.Nop(),
			delivery.WithBackoff(func(int) time.Duration { return time.Minute }),
		)

		engine.Notify("booking.created", map[string]string{"booking_id": "b-1"})

		// wait for the first attempt to land, then shut down mid-backoff
		require.Eventually(t, func() bool { return log.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

		done := make(chan struct{})
		go func() {
			engine.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Close did not interrupt the retry wait")
		}

		assert.Equal(t, 1, log.Count())
	})
}
