package interfaces

import (
	"context"
	"time"

	"marketplace_billing/internal/domain/entities"
)

//go:generate mockgen -source=booking_repository_interface.go -destination=mocks/mock_booking_repository.go -package=mock_interfaces

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// Lookups return a zero Booking (empty ID) and a nil error when the item does
// not exist; updates behave the same way when the condition on the item fails.
type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (entities.Booking, error)
	AttachPayment(ctx context.Context, id, paymentID string) (entities.Booking, error)
	MarkReceiptSent(ctx context.Context, id string, sentAt time.Time) (entities.Booking, error)
}
