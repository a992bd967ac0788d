package domain

import "time"

// Offering is a service in the agency's catalogue.
type Offering struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Recurring   bool      `json:"recurring"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Subscription ties a client to a recurring offering.
type Subscription struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"client_id"`
	OfferingID string     `json:"offering_id"`
	Active     bool       `json:"active"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}
