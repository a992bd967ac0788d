package ports

import (
	"context"
	"time"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

// ClientRepository persists agency clients (tenants).
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// TicketRepository persists support tickets. ClientID filters in finders
// scope the query to one tenant; empty means unscoped (admin).
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	FindByID(ctx context.Context, id, clientID string) (*domain.Ticket, error)
	List(ctx context.Context, clientID string) ([]*domain.Ticket, error)
	SetStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

// OrderRepository persists client orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id, clientID string) (*domain.Order, error)
	List(ctx context.Context, clientID string) ([]*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByID(ctx context.Context, id, clientID string) (*domain.Invoice, error)
	List(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
}

// OfferingRepository persists the service catalogue.
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error)
	FindByID(ctx context.Context, id string) (*domain.Offering, error)
	List(ctx context.Context) ([]*domain.Offering, error)
}

// SubscriptionRepository persists client subscriptions to offerings.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	List(ctx context.Context, clientID string) ([]*domain.Subscription, error)
	End(ctx context.Context, id string, endedAt time.Time) error
}

// NotificationRepository stores delivered notifications for later display.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error)
}

// Actor identifies who is performing a CRM operation; services use it to
// scope reads and reject writes outside the caller's tenant.
type Actor struct {
	ID       string
	Role     domain.Role
	ClientID string
}

// Scope returns the tenant filter for the actor: empty (no filter) for
// admin-family actors, the actor's own client id otherwise.
func (a Actor) Scope() string {
	if a.Role.AdminFamily() {
		return ""
	}
	return a.ClientID
}

// CreateTicketInput carries a new support ticket.
type CreateTicketInput struct {
	ClientID string
	Subject  string
	Body     string
	Priority domain.TicketPriority
}

// TicketService defines support-desk use cases.
type TicketService interface {
	Raise(ctx context.Context, actor Actor, in CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Ticket, error)
	List(ctx context.Context, actor Actor) ([]*domain.Ticket, error)
	SetStatus(ctx context.Context, actor Actor, id string, status domain.TicketStatus) error
}

// CreateOrderInput carries a new order.
type CreateOrderInput struct {
	ClientID    string
	OfferingID  string
	AmountCents int64
	Currency    string
	Notes       string
}

// OrderService defines order use cases.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Order, error)
	List(ctx context.Context, actor Actor) ([]*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// CreateInvoiceInput carries a new invoice.
type CreateInvoiceInput struct {
	ClientID string
	OrderID  string
	Currency string
	Lines    []domain.InvoiceLine
	DueDate  *time.Time
}

// InvoiceService defines billing use cases.
type InvoiceService interface {
	Create(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Invoice, error)
	List(ctx context.Context, actor Actor) ([]*domain.Invoice, error)
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
}
