package delivery

import "context"

/* The attempt log is append-only and safe under concurrent writers:
 * rows are independent and never updated
 */

// Writer appends attempt records. The delivery engine is the sole writer.
type Writer interface {
	Append(ctx context.Context, attempt Attempt) error
}

// Reader provides the forensic and reporting reads over the attempt log.
type Reader interface {
	ListBySubscription(ctx context.Context, subscriptionID string, limit int) ([]Attempt, error)
	Totals(ctx context.Context) (Totals, error)
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
