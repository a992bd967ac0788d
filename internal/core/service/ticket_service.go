package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// TicketService implements the support desk. Client-family actors are
// scoped to their own tenant; admin-family actors see everything.
type TicketService struct {
	repo     ports.TicketRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, notifier ports.Notifier, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, notifier: notifier, log: log}
}

func (s *TicketService) Raise(ctx context.Context, actor ports.Actor, in ports.CreateTicketInput) (*domain.Ticket, error) {
	clientID := in.ClientID
	// Client-family actors always raise for their own tenant, whatever
	// the request says.
	if actor.Role.ClientFamily() {
		clientID = actor.ClientID
	}
	if clientID == "" {
		return nil, domain.ErrClientNotFound
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ClientID:  clientID,
		Subject:   in.Subject,
		Body:      in.Body,
		Status:    domain.TicketOpen,
		Priority:  priority,
		RaisedBy:  actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("raise ticket: %w", err)
	}
	s.log.Info().Str("ticket_id", created.ID).Str("client_id", clientID).Msg("ticket raised")
	return created, nil
}

func (s *TicketService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id, actor.Scope())
}

func (s *TicketService) List(ctx context.Context, actor ports.Actor) ([]*domain.Ticket, error) {
	return s.repo.List(ctx, actor.Scope())
}

func (s *TicketService) SetStatus(ctx context.Context, actor ports.Actor, id string, status domain.TicketStatus) error {
	if !domain.ValidTicketStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	ticket, err := s.repo.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set ticket status: %w", err)
	}

	s.notifier.Info(ticket.RaisedBy, fmt.Sprintf("Ticket %q is now %s", ticket.Subject, status.Label()))
	return nil
}
