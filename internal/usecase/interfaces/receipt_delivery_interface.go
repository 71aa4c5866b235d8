package interfaces

import (
	"context"

	"marketplace_billing/internal/domain/entities"
)

//go:generate mockgen -source=receipt_delivery_interface.go -destination=mocks/mock_receipt_delivery.go -package=mock_interfaces

// IReceiptRenderer turns a receipt into a binary document (PDF).
type IReceiptRenderer interface {
	Render(ctx context.Context, r entities.Receipt) ([]byte, error)
}

// IEmailSender abstracts the transactional email relay.
type IEmailSender interface {
	Send(ctx context.Context, email entities.Email) error
}

// BookingChangeHandler is invoked once per booking change, in order.
type BookingChangeHandler func(ctx context.Context, change entities.BookingChange) error

// IBookingEventSource pushes booking-record changes to a subscriber.
// Subscribe blocks until ctx is done or the source fails.
type IBookingEventSource interface {
	Subscribe(ctx context.Context, handler BookingChangeHandler) error
}
