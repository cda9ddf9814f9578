package delivery

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/booking-pulse/delivery/payload"
	"github.com/marcelsud/booking-pulse/delivery/signature"
	"github.com/marcelsud/booking-pulse/subscription"
	"github.com/rs/zerolog"
)

const (
	// MaxAttempts is the total attempt budget per subscription per event.
	MaxAttempts = 3

	// AttemptTimeout bounds each HTTP POST independently of the retry budget.
	AttemptTimeout = 10 * time.Second

	// HeaderEvent carries the event name on the outbound request.
	HeaderEvent = "Webhook-Event"

	// HeaderSignature carries the hex HMAC-SHA256 of the request body.
	HeaderSignature = "Webhook-Signature"
)

// SubscriptionSource yields the active subscriptions for one fan-out.
// The result is treated as an immutable snapshot: concurrent edits to
// subscription configuration are not observed mid-flight.
type SubscriptionSource interface {
	ListActive(ctx context.Context) ([]subscription.Subscription, error)
}

/* outcome classifies one attempt
 * delivered: 2xx, stop
 * permanent: 4xx except 429, client errors are not transient, stop
 * transient: 5xx, 429, network failure or timeout, retry if budget remains
 */
type outcome int

const (
	delivered outcome = iota + 1
	permanent
	transient
)

// Engine performs at-least-once, signed, fire-and-forget event delivery.
// Retry waits are cancellable only by Close, never by the caller that
// triggered the event.
type Engine struct {
	source      SubscriptionSource
	attempts    Writer
	client      *http.Client
	logger      zerolog.Logger
	maxAttempts int
	timeout     time.Duration
	backoff     func(attempt int) time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option customises engine construction.
type Option func(*Engine)

// WithHTTPClient overrides the outbound HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) { e.client = client }
}

// WithAttemptTimeout overrides the per-attempt HTTP timeout.
func WithAttemptTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithBackoff overrides the wait between transient failures.
func WithBackoff(f func(attempt int) time.Duration) Option {
	return func(e *Engine) { e.backoff = f }
}

// NewEngine creates a delivery engine. Deliveries run on a background
// context owned by the engine, detached from caller lifecycles.
func NewEngine(source SubscriptionSource, attempts Writer, logger zerolog.Logger, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		source:      source,
		attempts:    attempts,
		client:      &http.Client{},
		logger:      logger,
		maxAttempts: MaxAttempts,
		timeout:     AttemptTimeout,
		backoff:     SquareBackoff,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SquareBackoff waits attempt² seconds: 1s after the 1st failed
// attempt, 4s after the 2nd.
func SquareBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * time.Second
}

// Notify starts a delivery cycle for every active subscription
// interested in the event and returns immediately. No outcome is
// observable by the caller; results land in the attempt log only.
func (e *Engine) Notify(event string, data any) {
	evt := subscription.NewEventType(event)
	if err := evt.Validate(); err != nil {
		e.logger.Error().Str("event", event).Msg("dropping unknown event")
		return
	}

	env, err := payload.New(event, data)
	if err != nil {
		e.logger.Error().Err(err).Str("event", event).Msg("building event envelope")
		return
	}
	body, err := env.Bytes()
	if err != nil {
		e.logger.Error().Err(err).Str("event", event).Msg("serializing event envelope")
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.fanOut(evt, body)
	}()
}

/* fanOut delivers to all matching subscriptions concurrently and
 * independently: one slow or failing subscriber never blocks another.
 * The join is a settle-all; individual failures are contained
 */
func (e *Engine) fanOut(evt subscription.EventType, body []byte) {
	subs, err := e.source.ListActive(e.ctx)
	if err != nil {
		e.logger.Error().Err(err).Str("event", evt.String()).Msg("loading active subscriptions")
		return
	}

	for _, sub := range subs {
		if !sub.Subscribed(evt) {
			continue
		}
		e.wg.Add(1)
		go func(sub subscription.Subscription) {
			defer e.wg.Done()
			e.deliver(sub, evt, body)
		}(sub)
	}
	// no matching subscription is not an error
}

// deliver runs the sequential retry loop for one subscription.
func (e *Engine) deliver(sub subscription.Subscription, evt subscription.EventType, body []byte) {
	secret, err := signature.ParseSecret(sub.Secret)
	if err != nil {
		// secrets are validated at creation; reaching this means the
		// stored record was corrupted
		e.logger.Error().Err(err).Str("subscription_id", sub.ID).Msg("unusable signing secret")
		return
	}
	sig := signature.Sign(secret, body)

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		status, respBody, result := e.attemptOnce(sub, evt, body, sig)
		e.record(sub.ID, evt, status, respBody, result == delivered)

		switch result {
		case delivered:
			return
		case permanent:
			return
		}

		if attempt == e.maxAttempts {
			e.logger.Warn().
				Str("subscription_id", sub.ID).
				Str("event", evt.String()).
				Int("attempts", attempt).
				Msg("delivery exhausted")
			return
		}

		select {
		case <-time.After(e.backoff(attempt)):
		case <-e.ctx.Done():
			return
		}
	}
}

// attemptOnce issues one signed POST bounded by the attempt timeout.
func (e *Engine) attemptOnce(sub subscription.Subscription, evt subscription.EventType, body []byte, sig string) (*int, string, outcome) {
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.TargetURL, bytes.NewReader(body))
	if err != nil {
		return nil, err.Error(), transient
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, evt.String())
	req.Header.Set(HeaderSignature, sig)

	resp, err := e.client.Do(req)
	if err != nil {
		// timeouts and network failures land here; status stays null
		return nil, truncate(err.Error()), transient
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBody))
	status := resp.StatusCode

	switch {
	case status >= 200 && status < 300:
		return &status, truncate(string(respBody)), delivered
	case status == http.StatusTooManyRequests:
		return &status, truncate(string(respBody)), transient
	case status >= 400 && status < 500:
		return &status, truncate(string(respBody)), permanent
	default:
		return &status, truncate(string(respBody)), transient
	}
}

// record writes exactly one attempt row; every attempt is logged,
// never retried silently.
func (e *Engine) record(subscriptionID string, evt subscription.EventType, status *int, respBody string, success bool) {
	attempt := Attempt{
		ID:             uuid.New().String(),
		SubscriptionID: subscriptionID,
		Event:          evt,
		StatusCode:     status,
		ResponseBody:   respBody,
		Success:        success,
		CreatedAt:      time.Now(),
	}
	if err := e.attempts.Append(e.ctx, attempt); err != nil {
		e.logger.Error().Err(err).Str("subscription_id", subscriptionID).Msg("recording delivery attempt")
	}
}

// Wait blocks until every in-flight delivery cycle settles.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close aborts pending retry waits and joins in-flight deliveries.
// This is the only path that can interrupt a retry sleep.
func (e *Engine) Close() {
	e.cancel()
	e.wg.Wait()
}

func truncate(s string) string {
	if len(s) > MaxResponseBody {
		return s[:MaxResponseBody]
	}
	return s
}
