package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	request "marketplace_billing/internal/adapter/http/dto/request"
	response "marketplace_billing/internal/adapter/http/dto/response"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase"
	"marketplace_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errPaymentIDRequired = pkg.NewDomainErrorSimple("PAYMENT_ID_REQUIRED", "Payment ID is required", http.StatusBadRequest)

// ReceiptHandler triggers provider receipts and exposes the dispatch log.
type ReceiptHandler struct {
	usecase usecase.IReceiptUseCase
	now     func() time.Time
}

func NewReceiptHandler(uc usecase.IReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{usecase: uc, now: time.Now}
}

// SendReceipt godoc
// @Summary      Send a receipt
// @Description  Sends the provider receipt for a succeeded payment. A booking trigger ({bookingId, type: "bookingStatusChange"}) resolves the payment from the booking and is a no-op when the receipt was already sent.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body      request.ReceiptRequest  true  "Receipt trigger"
// @Success      200   {object}  response.ReceiptSentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /receipts [post]
func (h *ReceiptHandler) SendReceipt(c *gin.Context) {
	var payload request.ReceiptRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[receipt][handler] invalid payload err=%v", err)
		c.JSON(errPaymentIDRequired.HTTPStatus, errPaymentIDRequired.ToHTTPError())
		return
	}

	var (
		dispatch entities.ReceiptDispatch
		err      error
	)
	switch {
	case payload.IsBookingTrigger():
		log.Printf("[receipt][handler] send start booking_id=%s type=%s", payload.BookingID, payload.Type)
		dispatch, err = h.usecase.SendForBooking(c.Request.Context(), payload.BookingID)
	case strings.TrimSpace(payload.PaymentID) != "":
		log.Printf("[receipt][handler] send start payment_id=%s", payload.PaymentID)
		dispatch, err = h.usecase.SendForPayment(c.Request.Context(), payload.PaymentID)
	default:
		log.Printf("[receipt][handler] missing payment id")
		c.JSON(errPaymentIDRequired.HTTPStatus, errPaymentIDRequired.ToHTTPError())
		return
	}
	if err != nil {
		log.Printf("[receipt][handler] send failed payment_id=%s booking_id=%s err=%v", payload.PaymentID, payload.BookingID, err)
		appErr := mapReceiptError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPBody())
		return
	}
	log.Printf("[receipt][handler] send success payment_id=%s booking_id=%s skipped=%t", dispatch.PaymentID, dispatch.BookingID, dispatch.Skipped)

	c.JSON(http.StatusOK, response.FromReceiptDispatch(dispatch))
}

// ProbeReceipts godoc
// @Summary      Receipt endpoint probe
// @Tags         receipts
// @Produce      json
// @Success      200  {object}  response.ReceiptProbeResponse
// @Router       /receipts [get]
func (h *ReceiptHandler) ProbeReceipts(c *gin.Context) {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}
	c.JSON(http.StatusOK, response.ReceiptProbeResponse{
		Message:     "Receipt endpoint is reachable",
		Timestamp:   h.now().UTC(),
		Environment: env,
	})
}

// ListReceiptsByPaymentID godoc
// @Summary      List receipts sent for a payment
// @Tags         receipts
// @Produce      json
// @Param        payment_id  path      string  true  "Payment intent ID"
// @Success      200         {array}   response.ReceiptRecordResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      500         {object}  pkg.HTTPError
// @Router       /receipts/{payment_id} [get]
func (h *ReceiptHandler) ListReceiptsByPaymentID(c *gin.Context) {
	paymentID := c.Param("payment_id")

	records, err := h.usecase.ListByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[receipt][handler] list failed payment_id=%s err=%v", paymentID, err)
		appErr := mapReceiptError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReceiptRecords(records))
}

func mapReceiptError(err error) *pkg.AppError {
	var ie *usecase.IneligibleError
	if errors.As(err, &ie) {
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_ELIGIBLE", ineligibleMessage(ie), http.StatusBadRequest).
			WithExtra("status", string(ie.Status))
		if ie.Metadata != nil {
			appErr.WithExtra("metadata", ie.Metadata)
		}
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID):
		return errPaymentIDRequired
	case errors.Is(err, usecase.ErrInvalidBookingID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Booking ID is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBookingNotCompleted):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_COMPLETED", "Booking not completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPaymentMetadata):
		return pkg.NewDomainError("INVALID_PAYMENT_METADATA", "Payment metadata is invalid", err, http.StatusInternalServerError)
	default:
		return mapDependencyError(err)
	}
}

func ineligibleMessage(ie *usecase.IneligibleError) string {
	if errors.Is(ie.Err, usecase.ErrProviderEmailMissing) {
		return "Provider email not found in payment metadata"
	}
	return "Cannot send receipt for incomplete payment"
}
