package handlers

import (
	"errors"
	"log"
	"net/http"

	request "marketplace_billing/internal/adapter/http/dto/request"
	response "marketplace_billing/internal/adapter/http/dto/response"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase"
	"marketplace_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentIntentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// PaymentIntentHandler exposes the commission and intent calculator.
type PaymentIntentHandler struct {
	usecase usecase.IPaymentIntentUseCase
}

func NewPaymentIntentHandler(uc usecase.IPaymentIntentUseCase) *PaymentIntentHandler {
	return &PaymentIntentHandler{usecase: uc}
}

// CreatePaymentIntent godoc
// @Summary      Create a payment intent
// @Description  Adds the 15% platform commission to the service amount and creates a Stripe customer, ephemeral key and payment intent for the total.
// @Tags         payment-intents
// @Accept       json
// @Produce      json
// @Param        body  body      request.PaymentIntentRequest  true  "Payment intent request"
// @Success      200   {object}  response.PaymentIntentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /payment-intents [post]
func (h *PaymentIntentHandler) CreatePaymentIntent(c *gin.Context) {
	var payload request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[intent][handler] invalid payload err=%v", err)
		c.JSON(errInvalidPaymentIntentPayload.HTTPStatus, errInvalidPaymentIntentPayload.ToHTTPError())
		return
	}
	log.Printf("[intent][handler] create start provider_email=%q booking_id=%q", payload.ProviderEmail, payload.BookingID)

	result, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[intent][handler] create failed err=%v", err)
		appErr := mapPaymentIntentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[intent][handler] create success payment_id=%s status=%s", result.PaymentID, result.Status)

	c.JSON(http.StatusOK, response.FromPaymentIntentResult(result))
}

func mapPaymentIntentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrAmountTooLarge):
		return pkg.NewDomainError("INVALID_AMOUNT", "Amount exceeds the maximum chargeable total", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero; zero-amount payments are not accepted", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedCurrency):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_CURRENCY", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainError("INVALID_EMAIL", "A valid email address is required", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidServiceDescription):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE_DESCRIPTION", "Service description is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	default:
		return mapDependencyError(err)
	}
}
