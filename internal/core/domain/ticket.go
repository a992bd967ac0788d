package domain

import "time"

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

var ticketStatusLabels = map[TicketStatus]string{
	TicketOpen:       "Open",
	TicketInProgress: "In Progress",
	TicketResolved:   "Resolved",
	TicketClosed:     "Closed",
}

// ValidTicketStatus reports whether s is a known ticket state.
func ValidTicketStatus(s TicketStatus) bool {
	_, ok := ticketStatusLabels[s]
	return ok
}

// Label returns the display form of the status.
func (s TicketStatus) Label() string {
	if l, ok := ticketStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// TicketPriority orders tickets in the triage queue.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Ticket is a support request raised by a client and triaged by the team.
type Ticket struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"client_id"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Status    TicketStatus   `json:"status"`
	Priority  TicketPriority `json:"priority"`
	RaisedBy  string         `json:"raised_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
