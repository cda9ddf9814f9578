package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcelsud/booking-pulse/booking"
	"github.com/marcelsud/booking-pulse/risk"
)

/* PostgreSQL implementation of booking.Repository
 * Uses pgx directly, no ORM; statuses and tiers are stored as their
 * wire strings so rows stay readable in psql
 */
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a booking repository over a shared pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Store inserts a new booking row.
func (r *Repository) Store(ctx context.Context, b booking.Booking) (string, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings (id, event_type, created_at, starts_at, timezone,
		   invitee_name, invitee_email, topic, notes, repeat_booker,
		   status, risk_score, risk_tier, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.EventType, b.CreatedAt, b.StartsAt, b.Timezone,
		b.InviteeName, b.InviteeEmail, b.Topic, b.Notes, b.RepeatBooker,
		b.Status.String(), b.RiskScore, b.RiskTier.String(), b.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting booking: %w", err)
	}
	return b.ID, nil
}

// Get returns a single booking or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, event_type, created_at, starts_at, timezone,
		   invitee_name, invitee_email, topic, notes, repeat_booker,
		   status, risk_score, risk_tier, updated_at
		 FROM bookings WHERE id = $1`,
		id,
	)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrNotFound
		}
		return booking.Booking{}, fmt.Errorf("getting booking: %w", err)
	}
	return b, nil
}

// List returns the most recent bookings.
func (r *Repository) List(ctx context.Context, limit int) ([]booking.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_type, created_at, starts_at, timezone,
		   invitee_name, invitee_email, topic, notes, repeat_booker,
		   status, risk_score, risk_tier, updated_at
		 FROM bookings
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// HasPrior reports whether the email has any earlier booking.
func (r *Repository) HasPrior(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE invitee_email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking prior bookings: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves a booking to a new lifecycle state.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status booking.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status.String(), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// UpdateSchedule moves a booking to a new start time.
func (r *Repository) UpdateSchedule(ctx context.Context, id string, startsAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET starts_at = $2, updated_at = $3 WHERE id = $1`,
		id, startsAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating booking schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// UpdateRisk overwrites the stored score and tier.
func (r *Repository) UpdateRisk(ctx context.Context, id string, score int, tier risk.Tier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET risk_score = $2, risk_tier = $3, updated_at = $4 WHERE id = $1`,
		id, score, tier.String(), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating booking risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Occurrences reduces the trailing history to (local weekday, local
// hour) pairs for heatmap construction. Cancelled bookings never count.
func (r *Repository) Occurrences(ctx context.Context, since time.Time, eventTypes []string) ([]booking.Occurrence, error) {
	query := `SELECT starts_at, timezone FROM bookings
		 WHERE starts_at >= $1 AND status IN ('confirmed', 'completed')`
	args := []any{since}
	if len(eventTypes) > 0 {
		query += ` AND event_type = ANY($2)`
		args = append(args, eventTypes)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying booking history: %w", err)
	}
	defer rows.Close()

	var occurrences []booking.Occurrence
	for rows.Next() {
		var startsAt time.Time
		var timezone string
		if err := rows.Scan(&startsAt, &timezone); err != nil {
			return nil, fmt.Errorf("scanning booking history: %w", err)
		}

		loc, err := time.LoadLocation(timezone)
		if err != nil {
			loc = time.UTC
		}
		local := startsAt.In(loc)
		occurrences = append(occurrences, booking.Occurrence{
			Day:  local.Weekday(),
			Hour: local.Hour(),
		})
	}
	return occurrences, rows.Err()
}

// Outcomes returns tier/result pairs for resolved bookings.
func (r *Repository) Outcomes(ctx context.Context, since time.Time) ([]risk.Outcome, error) {
	rows, err := r.db.Query(ctx,
		`SELECT risk_tier, status FROM bookings
		 WHERE starts_at >= $1 AND status IN ('completed', 'no_show')`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []risk.Outcome
	for rows.Next() {
		var tier, status string
		if err := rows.Scan(&tier, &status); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		outcomes = append(outcomes, risk.Outcome{
			Tier:   risk.NewTier(tier),
			NoShow: booking.NewStatus(status) == booking.NoShow,
		})
	}
	return outcomes, rows.Err()
}

// Close releases the underlying pool.
func (r *Repository) Close(ctx context.Context) error {
	r.db.Close()
	return nil
}

func scanBooking(row pgx.Row) (booking.Booking, error) {
	var b booking.Booking
	var status, tier string
	err := row.Scan(
		&b.ID, &b.EventType, &b.CreatedAt, &b.StartsAt, &b.Timezone,
		&b.InviteeName, &b.InviteeEmail, &b.Topic, &b.Notes, &b.RepeatBooker,
		&status, &b.RiskScore, &tier, &b.UpdatedAt,
	)
	if err != nil {
		return booking.Booking{}, err
	}
	b.Status = booking.NewStatus(status)
	b.RiskTier = risk.NewTier(tier)
	return b, nil
}
