package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcelsud/booking-pulse/subscription"
)

/* PostgreSQL implementation of subscription.Repository
 * Event sets are stored as text[] of wire names
 */
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a subscription repository over a shared pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Store inserts a new subscription row.
func (r *Repository) Store(ctx context.Context, sub subscription.Subscription) (string, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscriptions (id, target_url, event_types, active, secret, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.TargetURL, eventNames(sub.EventTypes), sub.Active, sub.Secret, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting subscription: %w", err)
	}
	return sub.ID, nil
}

// Get returns a single subscription or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (subscription.Subscription, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, target_url, event_types, active, secret, created_at, updated_at
		 FROM subscriptions WHERE id = $1`,
		id,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Subscription{}, subscription.ErrNotFound
		}
		return subscription.Subscription{}, fmt.Errorf("getting subscription: %w", err)
	}
	return sub, nil
}

// List returns all subscriptions, newest first.
func (r *Repository) List(ctx context.Context) ([]subscription.Subscription, error) {
	return r.list(ctx,
		`SELECT id, target_url, event_types, active, secret, created_at, updated_at
		 FROM subscriptions ORDER BY created_at DESC`)
}

// ListActive returns the snapshot the delivery engine fans out over.
func (r *Repository) ListActive(ctx context.Context) ([]subscription.Subscription, error) {
	return r.list(ctx,
		`SELECT id, target_url, event_types, active, secret, created_at, updated_at
		 FROM subscriptions WHERE active ORDER BY created_at DESC`)
}

// SetActive toggles delivery for a subscription.
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating subscription state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrNotFound
	}
	return nil
}

// UpdateEventTypes replaces the subscribed event set.
func (r *Repository) UpdateEventTypes(ctx context.Context, id string, events []subscription.EventType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET event_types = $2, updated_at = $3 WHERE id = $1`,
		id, eventNames(events), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating event types: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrNotFound
	}
	return nil
}

// Close releases the underlying pool.
func (r *Repository) Close(ctx context.Context) error {
	r.db.Close()
	return nil
}

func (r *Repository) list(ctx context.Context, query string) ([]subscription.Subscription, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func scanSubscription(row pgx.Row) (subscription.Subscription, error) {
	var sub subscription.Subscription
	var names []string
	err := row.Scan(&sub.ID, &sub.TargetURL, &names, &sub.Active, &sub.Secret, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return subscription.Subscription{}, err
	}
	for _, name := range names {
		sub.EventTypes = append(sub.EventTypes, subscription.NewEventType(name))
	}
	return sub, nil
}

func eventNames(events []subscription.EventType) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.String()
	}
	return names
}
