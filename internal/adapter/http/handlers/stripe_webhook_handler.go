package handlers

import (
	"log"
	"net/http"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase"
	"marketplace_billing/pkg"

	"github.com/gin-gonic/gin"
)

const maxWebhookBodyBytes = 65536

// WebhookEventParser verifies a signed processor payload.
type WebhookEventParser interface {
	ParseWebhookEvent(payload []byte, sigHeader string) (entities.ProcessorEvent, error)
}

type StripeWebhookHandler struct {
	parser  WebhookEventParser
	usecase usecase.IReceiptUseCase
}

func NewStripeWebhookHandler(parser WebhookEventParser, uc usecase.IReceiptUseCase) *StripeWebhookHandler {
	return &StripeWebhookHandler{parser: parser, usecase: uc}
}

// HandleStripeEvent godoc
// @Summary      Stripe webhook
// @Description  Verifies the Stripe-Signature header. payment_intent.succeeded events for payments linked to a completed booking send the provider receipt.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Stripe signature"
// @Success      200               {object}  map[string]any
// @Failure      400               {object}  pkg.HTTPError
// @Failure      500               {object}  pkg.HTTPError
// @Router       /webhooks/stripe [post]
func (h *StripeWebhookHandler) HandleStripeEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] read body failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	event, err := h.parser.ParseWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("[webhook][handler] signature verification failed err=%v", err)
		appErr := pkg.NewDomainError("INVALID_SIGNATURE", "Invalid webhook signature", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] event received event_id=%s type=%s payment_id=%s", event.ID, event.Type, event.Payment.ID)

	dispatch, err := h.usecase.HandleProcessorEvent(c.Request.Context(), event)
	if err != nil {
		log.Printf("[webhook][handler] event handling failed event_id=%s err=%v", event.ID, err)
		appErr := mapReceiptError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPBody())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received":  true,
		"eventId":   event.ID,
		"type":      event.Type,
		"skipped":   dispatch.Skipped,
		"bookingId": dispatch.BookingID,
	})
}
