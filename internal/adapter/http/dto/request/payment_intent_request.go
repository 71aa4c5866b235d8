package request

import (
	"strings"

	"marketplace_billing/internal/domain/entities"
)

// PaymentIntentRequest is the payload of POST /v1/payment-intents.
//
// The mobile client sends `email` and `serviceOffered`; `payerEmail` and
// `serviceDescription` are accepted as aliases.
type PaymentIntentRequest struct {
	Amount             *float64 `json:"amount"`
	Currency           string   `json:"currency"`
	Email              string   `json:"email"`
	PayerEmail         string   `json:"payerEmail"`
	ProviderEmail      string   `json:"providerEmail"`
	ServiceOffered     string   `json:"serviceOffered"`
	ServiceDescription string   `json:"serviceDescription"`
	PaymentMethod      string   `json:"paymentMethod"`
	BookingID          string   `json:"bookingId"`
}

func (r PaymentIntentRequest) ToCommand() entities.PaymentIntentCommand {
	return entities.PaymentIntentCommand{
		Amount:             r.Amount,
		Currency:           r.Currency,
		PayerEmail:         firstNonBlank(r.Email, r.PayerEmail),
		ProviderEmail:      r.ProviderEmail,
		ServiceDescription: firstNonBlank(r.ServiceOffered, r.ServiceDescription),
		PaymentMethod:      r.PaymentMethod,
		BookingID:          r.BookingID,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
