package response

import (
	"time"

	"marketplace_billing/internal/domain/entities"
)

type BookingResponse struct {
	BookingID          string     `json:"booking_id"`
	ID                 string     `json:"id"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	PaymentID          string     `json:"payment_id,omitempty"`
	ProviderEmail      string     `json:"provider_email"`
	PayerEmail         string     `json:"payer_email,omitempty"`
	ServiceDescription string     `json:"service_description,omitempty"`
	ReceiptSent        bool       `json:"receipt_sent"`
	ReceiptSentAt      *time.Time `json:"receipt_sent_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		BookingID:          b.ID,
		ID:                 b.ID,
		Amount:             b.Amount,
		Currency:           b.Currency,
		Status:             string(b.Status),
		PaymentID:          b.PaymentID,
		ProviderEmail:      b.ProviderEmail,
		PayerEmail:         b.PayerEmail,
		ServiceDescription: b.ServiceDescription,
		ReceiptSent:        b.ReceiptSent,
		ReceiptSentAt:      b.ReceiptSentAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
