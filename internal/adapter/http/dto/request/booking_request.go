package request

import "marketplace_billing/internal/domain/entities"

type BookingCreateRequest struct {
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	Currency           string  `json:"currency"`
	ProviderEmail      string  `json:"provider_email" binding:"required,email"`
	PayerEmail         string  `json:"payer_email" binding:"omitempty,email"`
	ServiceDescription string  `json:"service_description" binding:"required"`
}

func (r BookingCreateRequest) ToCommand() entities.BookingCommand {
	return entities.BookingCommand{
		Amount:             r.Amount,
		Currency:           r.Currency,
		ProviderEmail:      r.ProviderEmail,
		PayerEmail:         r.PayerEmail,
		ServiceDescription: r.ServiceDescription,
	}
}

type BookingStatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Completed Cancelled"`
}
