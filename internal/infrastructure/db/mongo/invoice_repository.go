package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

const invoicesCollection = "invoices"

type InvoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{coll: db.Collection(invoicesCollection)}
}

type invoiceLineDoc struct {
	Description string `bson:"description"`
	Quantity    int    `bson:"quantity"`
	UnitCents   int64  `bson:"unit_cents"`
}

type invoiceDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Number    string             `bson:"number"`
	ClientID  string             `bson:"client_id"`
	OrderID   string             `bson:"order_id,omitempty"`
	Status    string             `bson:"status"`
	Currency  string             `bson:"currency"`
	Lines     []invoiceLineDoc   `bson:"lines"`
	DueDate   *time.Time         `bson:"due_date,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *invoiceDoc) toDomain() *domain.Invoice {
	lines := make([]domain.InvoiceLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = domain.InvoiceLine{Description: l.Description, Quantity: l.Quantity, UnitCents: l.UnitCents}
	}
	return &domain.Invoice{
		ID:        d.ID.Hex(),
		Number:    d.Number,
		ClientID:  d.ClientID,
		OrderID:   d.OrderID,
		Status:    domain.InvoiceStatus(d.Status),
		Currency:  d.Currency,
		Lines:     lines,
		DueDate:   d.DueDate,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	lines := make([]invoiceLineDoc, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = invoiceLineDoc{Description: l.Description, Quantity: l.Quantity, UnitCents: l.UnitCents}
	}

	doc := invoiceDoc{
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		OrderID:   inv.OrderID,
		Status:    string(inv.Status),
		Currency:  inv.Currency,
		Lines:     lines,
		DueDate:   inv.DueDate,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	created := *inv
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}

	filter := bson.M{"_id": oid}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	var doc invoiceDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InvoiceRepository) List(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Invoice
	for cur.Next(ctx) {
		var doc invoiceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *InvoiceRepository) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvoiceNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set invoice status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
