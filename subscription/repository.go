package subscription

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested subscription does not exist.
var ErrNotFound = errors.New("subscription not found")

// Reader provides read operations for subscriptions.
type Reader interface {
	Get(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	/* ListActive returns every active subscription; the delivery engine
	 * filters by event in-process and treats the result as an immutable
	 * snapshot for the duration of one fan-out
	 */
	ListActive(ctx context.Context) ([]Subscription, error)
}

// Writer provides write operations for subscriptions.
type Writer interface {
	Store(ctx context.Context, sub Subscription) (string, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdateEventTypes(ctx context.Context, id string, events []EventType) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
