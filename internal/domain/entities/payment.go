package entities

import "time"

// PaymentStatus mirrors the processor's payment intent lifecycle.
type PaymentStatus string

const (
	PaymentStatusRequiresPaymentMethod PaymentStatus = "requires_payment_method"
	PaymentStatusRequiresConfirmation  PaymentStatus = "requires_confirmation"
	PaymentStatusRequiresAction        PaymentStatus = "requires_action"
	PaymentStatusProcessing            PaymentStatus = "processing"
	PaymentStatusRequiresCapture       PaymentStatus = "requires_capture"
	PaymentStatusCanceled              PaymentStatus = "canceled"
	PaymentStatusSucceeded             PaymentStatus = "succeeded"
)

// Payment metadata keys. This is the canonical schema written at intent
// creation and read back by the receipt dispatcher.
const (
	MetadataProviderEmail      = "providerEmail"
	MetadataPayerEmail         = "payerEmail"
	MetadataServiceDescription = "serviceDescription"
	MetadataCommissionRate     = "commissionRate"
	MetadataCommissionAmount   = "commissionAmount"
	MetadataOriginalAmount     = "originalAmount"
	MetadataTotalAmount        = "totalAmount"
	MetadataPaymentDate        = "paymentDate"
	MetadataPaymentMethod      = "paymentMethod"
	MetadataBookingID          = "bookingId"
)

const DefaultPaymentMethod = "card"

// PaymentRecord is the processor-owned payment intent as seen by this service.
type PaymentRecord struct {
	ID           string
	CustomerID   string
	Amount       int64
	Currency     string
	Status       PaymentStatus
	ClientSecret string
	Metadata     map[string]string
}

// ProviderEmail returns the provider email stored in metadata, if any.
func (p PaymentRecord) ProviderEmail() string {
	return p.Metadata[MetadataProviderEmail]
}

// PaymentIntentCommand is the validated input of the intent calculator.
type PaymentIntentCommand struct {
	Amount             *float64
	Currency           string
	PayerEmail         string
	ProviderEmail      string
	ServiceDescription string
	PaymentMethod      string
	BookingID          string
}

// PaymentIntentInput is what the processor needs to create an intent.
type PaymentIntentInput struct {
	AmountMinor    int64
	Currency       string
	CustomerID     string
	Metadata       map[string]string
	IdempotencyKey string
}

// PaymentIntentResult is returned to the client that completes the payment.
type PaymentIntentResult struct {
	ClientSecret  string
	EphemeralKey  string
	CustomerID    string
	PaymentID     string
	Status        PaymentStatus
	Currency      string
	ProviderEmail string
	PaymentMethod string
	PaymentDate   time.Time
	BookingID     string
	Commission    Commission
}

// InvoiceField is a name/value pair printed on a hosted invoice.
type InvoiceField struct {
	Name  string
	Value string
}

// InvoiceInput describes a receipt invoice raised against the payer customer.
// AmountMinor is added as a single line item so the hosted invoice shows the
// charged total.
type InvoiceInput struct {
	CustomerID   string
	AmountMinor  int64
	Currency     string
	Description  string
	Metadata     map[string]string
	CustomFields []InvoiceField
}

// Invoice is the processor invoice used as a hosted receipt.
// InvoiceStatusPaid is the status of an invoice settled by the payment it
// documents.
const InvoiceStatusPaid = "paid"

type Invoice struct {
	ID         string
	Status     string
	HostedURL  string
	PDFURL     string
	CustomerID string
}

// ProcessorEvent is a verified webhook event from the payment processor.
type ProcessorEvent struct {
	ID      string
	Type    string
	Payment PaymentRecord
}

const ProcessorEventPaymentSucceeded = "payment_intent.succeeded"
