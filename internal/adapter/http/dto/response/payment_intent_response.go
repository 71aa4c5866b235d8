package response

import (
	"time"

	"marketplace_billing/internal/domain/entities"
)

// PaymentIntentResponse keeps the field names the mobile payment sheet reads.
// Amounts are in major units (PHP).
type PaymentIntentResponse struct {
	ClientSecret     string    `json:"clientSecret"`
	EphemeralKey     string    `json:"ephemeralKey"`
	CustomerID       string    `json:"customerId"`
	PaymentID        string    `json:"paymentId"`
	ProviderEmail    string    `json:"providerEmail"`
	PaymentMethod    string    `json:"paymentMethod"`
	PaymentDate      time.Time `json:"paymentDate"`
	OriginalAmount   float64   `json:"originalAmount"`
	CommissionAmount float64   `json:"commissionAmount"`
	CommissionRate   string    `json:"commissionRate"`
	TotalAmount      float64   `json:"totalAmount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	BookingID        string    `json:"bookingId,omitempty"`
}

func FromPaymentIntentResult(r entities.PaymentIntentResult) PaymentIntentResponse {
	return PaymentIntentResponse{
		ClientSecret:     r.ClientSecret,
		EphemeralKey:     r.EphemeralKey,
		CustomerID:       r.CustomerID,
		PaymentID:        r.PaymentID,
		ProviderEmail:    r.ProviderEmail,
		PaymentMethod:    r.PaymentMethod,
		PaymentDate:      r.PaymentDate,
		OriginalAmount:   entities.MajorFloat(r.Commission.OriginalMinor),
		CommissionAmount: entities.MajorFloat(r.Commission.CommissionMinor),
		CommissionRate:   entities.CommissionRateLabel(),
		TotalAmount:      entities.MajorFloat(r.Commission.TotalMinor),
		Currency:         r.Currency,
		Status:           string(r.Status),
		BookingID:        r.BookingID,
	}
}
