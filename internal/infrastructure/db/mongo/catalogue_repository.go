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

const (
	offeringsCollection     = "offerings"
	subscriptionsCollection = "subscriptions"
)

// OfferingRepository stores the service catalogue.
type OfferingRepository struct {
	coll *mongo.Collection
}

func NewOfferingRepository(db *mongo.Database) *OfferingRepository {
	return &OfferingRepository{coll: db.Collection(offeringsCollection)}
}

type offeringDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	PriceCents  int64              `bson:"price_cents"`
	Currency    string             `bson:"currency"`
	Recurring   bool               `bson:"recurring"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *offeringDoc) toDomain() *domain.Offering {
	return &domain.Offering{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		PriceCents:  d.PriceCents,
		Currency:    d.Currency,
		Recurring:   d.Recurring,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *OfferingRepository) Create(ctx context.Context, o *domain.Offering) (*domain.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := offeringDoc{
		Name:        o.Name,
		Description: o.Description,
		PriceCents:  o.PriceCents,
		Currency:    o.Currency,
		Recurring:   o.Recurring,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert offering: %w", err)
	}

	created := *o
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *OfferingRepository) FindByID(ctx context.Context, id string) (*domain.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOfferingNotFound
	}

	var doc offeringDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("find offering: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OfferingRepository) List(ctx context.Context) ([]*domain.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Offering
	for cur.Next(ctx) {
		var doc offeringDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode offering: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// SubscriptionRepository stores client subscriptions.
type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(subscriptionsCollection)}
}

type subscriptionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   string             `bson:"client_id"`
	OfferingID string             `bson:"offering_id"`
	Active     bool               `bson:"active"`
	StartedAt  time.Time          `bson:"started_at"`
	EndedAt    *time.Time         `bson:"ended_at,omitempty"`
}

func (d *subscriptionDoc) toDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:         d.ID.Hex(),
		ClientID:   d.ClientID,
		OfferingID: d.OfferingID,
		Active:     d.Active,
		StartedAt:  d.StartedAt,
		EndedAt:    d.EndedAt,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := subscriptionDoc{
		ClientID:   s.ClientID,
		OfferingID: s.OfferingID,
		Active:     s.Active,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, clientID string) ([]*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Subscription
	for cur.Next(ctx) {
		var doc subscriptionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *SubscriptionRepository) End(ctx context.Context, id string, endedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubscriptionNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"active":   false,
		"ended_at": endedAt,
	}})
	if err != nil {
		return fmt.Errorf("end subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
