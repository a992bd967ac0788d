package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrForbidden          = errors.New("access forbidden")

	ErrClientNotFound       = errors.New("client not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrOfferingNotFound     = errors.New("service offering not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	ErrInvalidStatus = errors.New("invalid status")
	// ErrGestureActive is returned when a drag gesture starts while another
	// one is still active for the same identity.
	ErrGestureActive = errors.New("drag gesture already active")
	// ErrNoGesture is returned when a drag end arrives with no recorded
	// drag start.
	ErrNoGesture = errors.New("no active drag gesture")
)
