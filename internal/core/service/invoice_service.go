package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// InvoiceService implements billing. Invoices are written by admins and
// read tenant-scoped.
type InvoiceService struct {
	repo ports.InvoiceRepository
	log  zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, log: log}
}

func (s *InvoiceService) Create(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if in.ClientID == "" {
		return nil, domain.ErrClientNotFound
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one line", domain.ErrInvalidStatus)
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		Number:    invoiceNumber(now),
		ClientID:  in.ClientID,
		OrderID:   in.OrderID,
		Status:    domain.InvoiceDraft,
		Currency:  currency,
		Lines:     in.Lines,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	s.log.Info().Str("invoice", created.Number).Str("client_id", in.ClientID).Msg("invoice created")
	return created, nil
}

func (s *InvoiceService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, id, actor.Scope())
}

func (s *InvoiceService) List(ctx context.Context, actor ports.Actor) ([]*domain.Invoice, error) {
	return s.repo.List(ctx, actor.Scope())
}

func (s *InvoiceService) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	if !domain.ValidInvoiceStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set invoice status: %w", err)
	}
	return nil
}

// invoiceNumber derives a human-readable invoice number such as
// INV-20260831-153012.
func invoiceNumber(t time.Time) string {
	return "INV-" + t.Format("20060102-150405")
}
