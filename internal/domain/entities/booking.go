package entities

import "time"

// BookingStatus represents the lifecycle of a marketplace booking.
//
// Values are written verbatim by the external booking system, which is why
// they are capitalized.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the booking may move from s to next.
// Completed and Cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusCompleted || next == BookingStatusCancelled
}

// Booking is a requested service persisted in the bookings table.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Stream: NEW_AND_OLD_IMAGES, consumed by the receipt dispatcher
//
// ReceiptSent is the dispatcher's idempotency flag. It is only set after a
// receipt has been delivered.
type Booking struct {
	ID                 string        `json:"id"`
	Amount             float64       `json:"amount"`
	Currency           string        `json:"currency"`
	Status             BookingStatus `json:"status"`
	PaymentID          string        `json:"payment_id"`
	ProviderEmail      string        `json:"provider_email"`
	PayerEmail         string        `json:"payer_email"`
	ServiceDescription string        `json:"service_description"`
	ReceiptSent        bool          `json:"receipt_sent"`
	ReceiptSentAt      *time.Time    `json:"receipt_sent_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// BookingCommand is the input for creating a booking.
type BookingCommand struct {
	Amount             float64
	Currency           string
	ProviderEmail      string
	PayerEmail         string
	ServiceDescription string
}

// BookingChange is a single change notification pushed by the record store.
// Old is nil for inserts.
type BookingChange struct {
	EventID string
	Old     *Booking
	New     *Booking
}

// BecameCompleted reports whether the change moved the booking into Completed.
func (c BookingChange) BecameCompleted() bool {
	if c.New == nil || c.New.Status != BookingStatusCompleted {
		return false
	}
	return c.Old == nil || c.Old.Status != BookingStatusCompleted
}
