package domain

import "time"

// OrderStatus is the lifecycle state of a client order. Orders carry their
// own vocabulary, independent of the task board states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:   "Pending",
	OrderActive:    "Active",
	OrderCompleted: "Completed",
	OrderCancelled: "Cancelled",
}

// ValidOrderStatus reports whether s is a known order state.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the display form of the status, falling back to the raw
// value for unknown data.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Order is a client's purchase of a service offering.
type Order struct {
	ID         string      `json:"id"`
	ClientID   string      `json:"client_id"`
	OfferingID string      `json:"offering_id"`
	Status     OrderStatus `json:"status"`
	AmountCents int64      `json:"amount_cents"`
	Currency   string      `json:"currency"`
	Notes      string      `json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
