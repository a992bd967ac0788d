package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// ClientService manages the agency's tenants. Admin-family only; the route
// layer enforces that, the service just does the CRUD.
type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

// CreateClientInput carries a new tenant's details.
type CreateClientInput struct {
	Name         string
	ContactEmail string
	ContactPhone string
	Company      string
	Notes        string
}

func (s *ClientService) Create(ctx context.Context, in CreateClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Company:      in.Company,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.log.Info().Str("client_id", created.ID).Str("name", created.Name).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, in CreateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		client.Name = in.Name
	}
	if in.ContactEmail != "" {
		client.ContactEmail = in.ContactEmail
	}
	client.ContactPhone = in.ContactPhone
	client.Company = in.Company
	client.Notes = in.Notes
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
