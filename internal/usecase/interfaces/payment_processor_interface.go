package interfaces

import (
	"context"

	"marketplace_billing/internal/domain/entities"
)

//go:generate mockgen -source=payment_processor_interface.go -destination=mocks/mock_payment_processor.go -package=mock_interfaces

// IPaymentProcessor abstracts the external payment processor (Stripe).
//
// The billing-service uses it to create the payer identity, the short-lived
// client credential and the payment intent, and later to read the intent back
// and raise a hosted invoice as receipt.
type IPaymentProcessor interface {
	CreateCustomer(ctx context.Context, email, idempotencyKey string) (customerID string, err error)
	CreateEphemeralKey(ctx context.Context, customerID string) (secret string, err error)
	CreatePaymentIntent(ctx context.Context, in entities.PaymentIntentInput) (entities.PaymentRecord, error)
	GetPaymentIntent(ctx context.Context, paymentID string) (entities.PaymentRecord, error)

	CreateInvoice(ctx context.Context, in entities.InvoiceInput) (entities.Invoice, error)
	FinalizeInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
	MarkInvoicePaid(ctx context.Context, invoiceID string) (entities.Invoice, error)
	SendInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
}
