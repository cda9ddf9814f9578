package subscription

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/booking-pulse/delivery/signature"
)

/* Configuration validity is settled here, at creation time
 * Delivery-time errors are always about reachability, never about a
 * malformed URL or an empty event set
 */

// SecretBytes is the size of generated signing secrets.
const SecretBytes = 32

// UseCase defines the business operations for subscription management.
type UseCase interface {
	/* Create returns the subscription with the plaintext secret set;
	 * this is the only moment the secret is exposed
	 */
	Create(ctx context.Context, targetURL string, events []string) (Subscription, error)
	Get(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	UpdateEvents(ctx context.Context, id string, events []string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type Service struct {
	Repo Repository
}

// NewService creates a new subscription service with dependency injection.
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create validates and stores a new active subscription with a freshly
// generated signing secret.
func (s *Service) Create(ctx context.Context, targetURL string, events []string) (Subscription, error) {
	if err := validateTargetURL(targetURL); err != nil {
		return Subscription{}, fmt.Errorf("validating target url: %w", err)
	}

	eventTypes, err := parseEventTypes(events)
	if err != nil {
		return Subscription{}, fmt.Errorf("validating event types: %w", err)
	}

	secret, err := signature.GenerateSecret(SecretBytes)
	if err != nil {
		return Subscription{}, fmt.Errorf("generating signing secret: %w", err)
	}

	sub := Subscription{
		ID:         uuid.New().String(),
		TargetURL:  targetURL,
		EventTypes: eventTypes,
		Active:     true,
		Secret:     secret.String(),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := s.Repo.Store(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("storing subscription: %w", err)
	}

	return sub, nil
}

// Get retrieves a subscription by id.
func (s *Service) Get(ctx context.Context, id string) (Subscription, error) {
	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Subscription{}, fmt.Errorf("getting subscription: %w", err)
	}
	return sub, nil
}

// List returns all subscriptions.
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	return all, nil
}

// UpdateEvents replaces the subscribed event set.
func (s *Service) UpdateEvents(ctx context.Context, id string, events []string) error {
	eventTypes, err := parseEventTypes(events)
	if err != nil {
		return fmt.Errorf("validating event types: %w", err)
	}

	if err := s.Repo.UpdateEventTypes(ctx, id, eventTypes); err != nil {
		return fmt.Errorf("updating event types: %w", err)
	}
	return nil
}

// SetActive toggles whether the subscription receives deliveries.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.Repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("updating subscription state: %w", err)
	}
	return nil
}

func validateTargetURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("target url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing target url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("target url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("target url must include a host")
	}
	return nil
}

func parseEventTypes(events []string) ([]EventType, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("event set cannot be empty")
	}
	parsed := make([]EventType, 0, len(events))
	for _, name := range events {
		e := NewEventType(name)
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("unknown event %q", name)
		}
		parsed = append(parsed, e)
	}
	return parsed, nil
}
