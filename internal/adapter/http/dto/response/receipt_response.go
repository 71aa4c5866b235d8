package response

import (
	"time"

	"marketplace_billing/internal/domain/entities"
)

type PaymentDetailsResponse struct {
	OriginalAmount   float64 `json:"originalAmount"`
	CommissionAmount float64 `json:"commissionAmount"`
	CommissionRate   string  `json:"commissionRate"`
	TotalAmount      float64 `json:"totalAmount"`
	ServiceOffered   string  `json:"serviceOffered"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentDate      string  `json:"paymentDate"`
}

type ReceiptSentResponse struct {
	Message        string                  `json:"message"`
	Strategy       string                  `json:"strategy,omitempty"`
	PaymentID      string                  `json:"paymentId,omitempty"`
	BookingID      string                  `json:"bookingId,omitempty"`
	InvoiceID      string                  `json:"invoiceId,omitempty"`
	InvoiceURL     string                  `json:"invoiceUrl,omitempty"`
	SentTo         []string                `json:"sentTo,omitempty"`
	Skipped        bool                    `json:"skipped,omitempty"`
	PaymentDetails *PaymentDetailsResponse `json:"paymentDetails,omitempty"`
}

func FromReceiptDispatch(d entities.ReceiptDispatch) ReceiptSentResponse {
	if d.Skipped {
		return ReceiptSentResponse{
			Message:   "Receipt already sent",
			Strategy:  string(d.Strategy),
			PaymentID: d.PaymentID,
			BookingID: d.BookingID,
			Skipped:   true,
		}
	}
	r := d.Receipt
	return ReceiptSentResponse{
		Message:    "Receipt sent successfully",
		Strategy:   string(d.Strategy),
		PaymentID:  d.PaymentID,
		BookingID:  d.BookingID,
		InvoiceID:  d.InvoiceID,
		InvoiceURL: d.InvoiceURL,
		SentTo:     d.SentTo,
		PaymentDetails: &PaymentDetailsResponse{
			OriginalAmount:   entities.MajorFloat(r.Commission.OriginalMinor),
			CommissionAmount: entities.MajorFloat(r.Commission.CommissionMinor),
			CommissionRate:   r.CommissionRate,
			TotalAmount:      entities.MajorFloat(r.Commission.TotalMinor),
			ServiceOffered:   r.Service,
			PaymentMethod:    r.PaymentMethod,
			PaymentDate:      r.DisplayDate(),
		},
	}
}

type ReceiptRecordResponse struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	BookingID string    `json:"booking_id,omitempty"`
	Strategy  string    `json:"strategy"`
	InvoiceID string    `json:"invoice_id,omitempty"`
	SentTo    []string  `json:"sent_to"`
	SentAt    time.Time `json:"sent_at"`
}

func FromReceiptRecords(records []entities.ReceiptRecord) []ReceiptRecordResponse {
	out := make([]ReceiptRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ReceiptRecordResponse{
			ID:        r.ID,
			PaymentID: r.PaymentID,
			BookingID: r.BookingID,
			Strategy:  string(r.Strategy),
			InvoiceID: r.InvoiceID,
			SentTo:    r.SentTo,
			SentAt:    r.SentAt,
		})
	}
	return out
}

// ReceiptProbeResponse answers GET on the receipt route.
type ReceiptProbeResponse struct {
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}
