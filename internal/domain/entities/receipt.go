package entities

import (
	"time"
)

// ReceiptStrategy selects how receipts are produced. It is chosen once at
// start-up and used for every dispatch.
type ReceiptStrategy string

const (
	ReceiptStrategyInvoice  ReceiptStrategy = "invoice"
	ReceiptStrategyDocument ReceiptStrategy = "document"
)

// ReceiptRecipient selects the receipt variant.
type ReceiptRecipient string

const (
	ReceiptRecipientProvider ReceiptRecipient = "provider"
	ReceiptRecipientPayer    ReceiptRecipient = "payer"
)

// Receipt is the rendered view of a succeeded payment.
type Receipt struct {
	Number         string
	PaymentID      string
	BookingID      string
	Date           time.Time
	Service        string
	ProviderEmail  string
	PayerEmail     string
	Currency       string
	PaymentMethod  string
	CommissionRate string
	Commission     Commission
	Recipient      ReceiptRecipient
}

// ReceiptFromPayment builds a receipt from the payment record and its
// metadata. Amounts come from metadata as written at intent creation.
func ReceiptFromPayment(p PaymentRecord) (Receipt, error) {
	c, err := ParseCommissionMetadata(p.Metadata, p.Amount)
	if err != nil {
		return Receipt{}, err
	}

	date, err := time.Parse(time.RFC3339, p.Metadata[MetadataPaymentDate])
	if err != nil {
		date = time.Time{}
	}
	method := p.Metadata[MetadataPaymentMethod]
	if method == "" {
		method = DefaultPaymentMethod
	}
	rate := p.Metadata[MetadataCommissionRate]
	if rate == "" {
		rate = CommissionRateLabel()
	}

	return Receipt{
		Number:         p.ID,
		PaymentID:      p.ID,
		BookingID:      p.Metadata[MetadataBookingID],
		Date:           date,
		Service:        p.Metadata[MetadataServiceDescription],
		ProviderEmail:  p.Metadata[MetadataProviderEmail],
		PayerEmail:     p.Metadata[MetadataPayerEmail],
		Currency:       p.Currency,
		PaymentMethod:  method,
		CommissionRate: rate,
		Commission:     c,
		Recipient:      ReceiptRecipientProvider,
	}, nil
}

// ForPayer returns the payer variant of the receipt.
func (r Receipt) ForPayer() Receipt {
	r.Recipient = ReceiptRecipientPayer
	return r
}

// DisplayDate renders the receipt date the way the mobile client shows it.
func (r Receipt) DisplayDate() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format("January 2, 2006")
}

// ReceiptRecord is an entry of the dispatch log.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_id-index): payment_id
type ReceiptRecord struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	BookingID string          `json:"booking_id,omitempty"`
	Strategy  ReceiptStrategy `json:"strategy"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	SentTo    []string        `json:"sent_to"`
	SentAt    time.Time       `json:"sent_at"`
}

// ReceiptDispatch is the outcome of a dispatch attempt.
type ReceiptDispatch struct {
	Strategy   ReceiptStrategy
	PaymentID  string
	BookingID  string
	InvoiceID  string
	InvoiceURL string
	SentTo     []string
	Skipped    bool
	Receipt    Receipt
}

// Email is a message handed to the email relay.
type Email struct {
	ToAddress   string
	Subject     string
	HTMLBody    string
	PlainBody   string
	Attachments []EmailAttachment
}

// EmailAttachment is a binary file attached to an Email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}
