package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// CatalogueService manages service offerings and client subscriptions.
type CatalogueService struct {
	offerings     ports.OfferingRepository
	subscriptions ports.SubscriptionRepository
	log           zerolog.Logger
}

func NewCatalogueService(offerings ports.OfferingRepository, subscriptions ports.SubscriptionRepository, log zerolog.Logger) *CatalogueService {
	return &CatalogueService{offerings: offerings, subscriptions: subscriptions, log: log}
}

// CreateOfferingInput carries a new catalogue entry.
type CreateOfferingInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Recurring   bool
}

func (s *CatalogueService) CreateOffering(ctx context.Context, in CreateOfferingInput) (*domain.Offering, error) {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	off := &domain.Offering{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Currency:    currency,
		Recurring:   in.Recurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.offerings.Create(ctx, off)
	if err != nil {
		return nil, fmt.Errorf("create offering: %w", err)
	}
	return created, nil
}

func (s *CatalogueService) ListOfferings(ctx context.Context) ([]*domain.Offering, error) {
	return s.offerings.List(ctx)
}

// Subscribe ties a client to a recurring offering.
func (s *CatalogueService) Subscribe(ctx context.Context, clientID, offeringID string) (*domain.Subscription, error) {
	if clientID == "" {
		return nil, domain.ErrClientNotFound
	}
	if _, err := s.offerings.FindByID(ctx, offeringID); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ClientID:   clientID,
		OfferingID: offeringID,
		Active:     true,
		StartedAt:  time.Now().UTC(),
	}

	created, err := s.subscriptions.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	s.log.Info().Str("client_id", clientID).Str("offering_id", offeringID).Msg("subscription started")
	return created, nil
}

// ListSubscriptions returns the actor-visible subscriptions.
func (s *CatalogueService) ListSubscriptions(ctx context.Context, actor ports.Actor) ([]*domain.Subscription, error) {
	return s.subscriptions.List(ctx, actor.Scope())
}

// Unsubscribe ends a subscription now.
func (s *CatalogueService) Unsubscribe(ctx context.Context, id string) error {
	if err := s.subscriptions.End(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}
