package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcelsud/booking-pulse/delivery"
	"github.com/marcelsud/booking-pulse/subscription"
)

/* PostgreSQL implementation of delivery.Repository
 * The attempt log is insert-only; rows carry everything needed to
 * diagnose a subscriber outage after the fact
 */
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates an attempt-log repository over a shared pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Append inserts one attempt row.
func (r *Repository) Append(ctx context.Context, attempt delivery.Attempt) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO delivery_attempts (id, subscription_id, event, status_code, response_body, success, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		attempt.ID, attempt.SubscriptionID, attempt.Event.String(),
		attempt.StatusCode, attempt.ResponseBody, attempt.Success, attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting delivery attempt: %w", err)
	}
	return nil
}

// ListBySubscription returns a subscription's recent attempts, newest first.
func (r *Repository) ListBySubscription(ctx context.Context, subscriptionID string, limit int) ([]delivery.Attempt, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, subscription_id, event, status_code, response_body, success, created_at
		 FROM delivery_attempts
		 WHERE subscription_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		subscriptionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing delivery attempts: %w", err)
	}
	defer rows.Close()

	var attempts []delivery.Attempt
	for rows.Next() {
		var a delivery.Attempt
		var event string
		if err := rows.Scan(&a.ID, &a.SubscriptionID, &event, &a.StatusCode, &a.ResponseBody, &a.Success, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning delivery attempt: %w", err)
		}
		a.Event = subscription.NewEventType(event)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Totals aggregates the whole attempt log.
func (r *Repository) Totals(ctx context.Context) (delivery.Totals, error) {
	var t delivery.Totals
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		   COUNT(*) FILTER (WHERE success),
		   COUNT(*) FILTER (WHERE NOT success)
		 FROM delivery_attempts`,
	).Scan(&t.Attempts, &t.Deliveries, &t.Failures)
	if err != nil {
		return delivery.Totals{}, fmt.Errorf("aggregating delivery attempts: %w", err)
	}
	return t, nil
}

// Close releases the underlying pool.
func (r *Repository) Close(ctx context.Context) error {
	r.db.Close()
	return nil
}
