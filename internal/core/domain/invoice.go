package domain

import "time"

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

var invoiceStatusLabels = map[InvoiceStatus]string{
	InvoiceDraft: "Draft",
	InvoiceSent:  "Sent",
	InvoicePaid:  "Paid",
	InvoiceVoid:  "Void",
}

// ValidInvoiceStatus reports whether s is a known invoice state.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	_, ok := invoiceStatusLabels[s]
	return ok
}

// Label returns the display form of the status.
func (s InvoiceStatus) Label() string {
	if l, ok := invoiceStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// InvoiceLine is a single billed item.
type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
}

// Invoice bills a client for delivered work.
type Invoice struct {
	ID        string        `json:"id"`
	Number    string        `json:"number"`
	ClientID  string        `json:"client_id"`
	OrderID   string        `json:"order_id,omitempty"`
	Status    InvoiceStatus `json:"status"`
	Currency  string        `json:"currency"`
	Lines     []InvoiceLine `json:"lines"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TotalCents sums all invoice lines.
func (i *Invoice) TotalCents() int64 {
	var total int64
	for _, l := range i.Lines {
		total += int64(l.Quantity) * l.UnitCents
	}
	return total
}
