package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// OrderService implements order management. Creation and status changes
// are admin operations; reads are tenant-scoped through the actor.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if in.ClientID == "" {
		return nil, domain.ErrClientNotFound
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ClientID:    in.ClientID,
		OfferingID:  in.OfferingID,
		Status:      domain.OrderPending,
		AmountCents: in.AmountCents,
		Currency:    currency,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.log.Info().Str("order_id", created.ID).Str("client_id", in.ClientID).Msg("order created")
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id, actor.Scope())
}

func (s *OrderService) List(ctx context.Context, actor ports.Actor) ([]*domain.Order, error) {
	return s.repo.List(ctx, actor.Scope())
}

func (s *OrderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	return nil
}
