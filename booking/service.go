package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/booking-pulse/risk"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// Lifecycle event names fired to webhook subscribers.
const (
	EventCreated     = "booking.created"
	EventCancelled   = "booking.cancelled"
	EventRescheduled = "booking.rescheduled"
)

// UseCase defines the business operations for booking management.
type UseCase interface {
	Create(ctx context.Context, req CreateRequest) (Booking, error)
	Get(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context, limit int) ([]Booking, error)
	Cancel(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, startsAt time.Time) (Booking, error)
	RecordOutcome(ctx context.Context, id string, outcome Status) error
	Rescore(ctx context.Context, id string) (Booking, error)
	AccuracyReport(ctx context.Context, since time.Time) (risk.Report, error)
}

/* Notifier starts an event delivery cycle and returns immediately
 * Delivery health never reaches the booking mutation path: a booking
 * succeeds regardless of webhook outcomes
 */
type Notifier interface {
	Notify(event string, data any)
}

// CreateRequest carries the invitee's slot selection.
type CreateRequest struct {
	EventType    string
	StartsAt     time.Time
	Timezone     string
	InviteeName  string
	InviteeEmail string
	Topic        string
	Notes        string
}

// EventData is the payload attached to lifecycle events.
type EventData struct {
	BookingID    string     `json:"booking_id"`
	EventType    string     `json:"event_type,omitempty"`
	StartsAt     time.Time  `json:"starts_at"`
	OldStartsAt  *time.Time `json:"old_starts_at,omitempty"`
	Timezone     string     `json:"timezone"`
	InviteeName  string     `json:"invitee_name"`
	InviteeEmail string     `json:"invitee_email"`
	Status       string     `json:"status"`
	RiskTier     string     `json:"risk_tier"`
}

type Service struct {
	Repo     Repository
	Scorer   risk.Scorer
	Notifier Notifier
}

// NewService creates a new booking service with dependency injection.
func NewService(repo Repository, scorer risk.Scorer, notifier Notifier) *Service {
	return &Service{
		Repo:     repo,
		Scorer:   scorer,
		Notifier: notifier,
	}
}

// Create stores a new confirmed booking, scoring its no-show risk
// synchronously and firing booking.created to subscribers.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Booking, error) {
	if req.InviteeEmail == "" {
		return Booking{}, fmt.Errorf("invitee email is required")
	}
	if req.StartsAt.IsZero() {
		return Booking{}, fmt.Errorf("start time is required")
	}

	repeat, err := s.Repo.HasPrior(ctx, req.InviteeEmail)
	if err != nil {
		return Booking{}, fmt.Errorf("checking prior bookings: %w", err)
	}

	now := time.Now()
	b := Booking{
		ID:           uuid.New().String(),
		EventType:    req.EventType,
		CreatedAt:    now,
		StartsAt:     req.StartsAt,
		Timezone:     req.Timezone,
		InviteeName:  req.InviteeName,
		InviteeEmail: req.InviteeEmail,
		Topic:        req.Topic,
		Notes:        req.Notes,
		RepeatBooker: repeat,
		Status:       Confirmed,
		UpdatedAt:    now,
	}

	local := req.StartsAt.In(b.Location())
	b.RiskScore, b.RiskTier = s.Scorer.Evaluate(risk.Factors{
		LeadTime:     req.StartsAt.Sub(now),
		Weekday:      local.Weekday(),
		Hour:         local.Hour(),
		RepeatBooker: repeat,
		HasTopic:     req.Topic != "",
		HasNotes:     req.Notes != "",
	})

	if _, err := s.Repo.Store(ctx, b); err != nil {
		return Booking{}, fmt.Errorf("storing booking: %w", err)
	}

	s.Notifier.Notify(EventCreated, s.eventData(b, nil))
	return b, nil
}

// Get retrieves a booking by id.
func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Booking{}, fmt.Errorf("getting booking: %w", err)
	}
	return b, nil
}

// List returns the most recent bookings.
func (s *Service) List(ctx context.Context, limit int) ([]Booking, error) {
	all, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return all, nil
}

// Cancel moves a confirmed booking to cancelled and fires
// booking.cancelled.
func (s *Service) Cancel(ctx context.Context, id string) error {
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting booking: %w", err)
	}
	if b.Status.IsFinal() {
		return fmt.Errorf("booking %s is already %s", id, b.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, Cancelled); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}

	b.Status = Cancelled
	s.Notifier.Notify(EventCancelled, s.eventData(b, nil))
	return nil
}

// Reschedule moves a confirmed booking to a new start time and fires
// booking.rescheduled. The risk score is never recomputed here.
func (s *Service) Reschedule(ctx context.Context, id string, startsAt time.Time) (Booking, error) {
	if startsAt.IsZero() {
		return Booking{}, fmt.Errorf("start time is required")
	}

	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Booking{}, fmt.Errorf("getting booking: %w", err)
	}
	if b.Status.IsFinal() {
		return Booking{}, fmt.Errorf("booking %s is already %s", id, b.Status)
	}

	if err := s.Repo.UpdateSchedule(ctx, id, startsAt); err != nil {
		return Booking{}, fmt.Errorf("rescheduling booking: %w", err)
	}

	old := b.StartsAt
	b.StartsAt = startsAt
	s.Notifier.Notify(EventRescheduled, s.eventData(b, &old))
	return b, nil
}

// RecordOutcome marks a past booking as completed or no-show.
// Outcomes feed the accuracy report; no event is fired.
func (s *Service) RecordOutcome(ctx context.Context, id string, outcome Status) error {
	if !outcome.IsOutcome() {
		return fmt.Errorf("invalid outcome: %s", outcome)
	}

	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting booking: %w", err)
	}
	if b.Status != Confirmed {
		return fmt.Errorf("booking %s is %s, outcome can only be recorded once", id, b.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, outcome); err != nil {
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// Rescore recomputes the risk score on explicit request only; the
// score set at creation is otherwise immutable.
func (s *Service) Rescore(ctx context.Context, id string) (Booking, error) {
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Booking{}, fmt.Errorf("getting booking: %w", err)
	}

	local := b.StartsAt.In(b.Location())
	b.RiskScore, b.RiskTier = s.Scorer.Evaluate(risk.Factors{
		LeadTime:     b.StartsAt.Sub(time.Now()),
		Weekday:      local.Weekday(),
		Hour:         local.Hour(),
		RepeatBooker: b.RepeatBooker,
		HasTopic:     b.Topic != "",
		HasNotes:     b.Notes != "",
	})

	if err := s.Repo.UpdateRisk(ctx, id, b.RiskScore, b.RiskTier); err != nil {
		return Booking{}, fmt.Errorf("updating risk score: %w", err)
	}
	return b, nil
}

// AccuracyReport compares tiers predicted at booking time against
// recorded outcomes since the given time.
func (s *Service) AccuracyReport(ctx context.Context, since time.Time) (risk.Report, error) {
	outcomes, err := s.Repo.Outcomes(ctx, since)
	if err != nil {
		return risk.Report{}, fmt.Errorf("loading outcomes: %w", err)
	}
	return risk.Precision(outcomes), nil
}

func (s *Service) eventData(b Booking, oldStart *time.Time) EventData {
	return EventData{
		BookingID:    b.ID,
		EventType:    b.EventType,
		StartsAt:     b.StartsAt,
		OldStartsAt:  oldStart,
		Timezone:     b.Timezone,
		InviteeName:  b.InviteeName,
		InviteeEmail: b.InviteeEmail,
		Status:       b.Status.String(),
		RiskTier:     b.RiskTier.String(),
	}
}
