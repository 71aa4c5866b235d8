package routes

import (
	"net/http"

	"marketplace_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPaymentIntents = "/payment-intents"
	PathReceipts       = "/receipts"
	PathBookings       = "/bookings"
	PathWebhooks       = "/webhooks"

	PathLegacyPaymentIntent = "/create-payment-intent"
	PathLegacyReceipt       = "/send-receipt"
)

var unsupportedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addPaymentRoutes(
	rg *gin.RouterGroup,
	intentHandler *handlers.PaymentIntentHandler,
	receiptHandler *handlers.ReceiptHandler,
	webhookHandler *handlers.StripeWebhookHandler,
) {
	addPaymentIntentRoute(rg, PathPaymentIntents, intentHandler)
	addReceiptRoute(rg, PathReceipts, receiptHandler)
	rg.GET(PathReceipts+"/:payment_id", receiptHandler.ListReceiptsByPaymentID)

	if webhookHandler != nil {
		rg.POST(PathWebhooks+"/stripe", webhookHandler.HandleStripeEvent)
	}
}

func addBookingRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:booking_id", bookingHandler.GetBooking)
		bookings.PATCH("/:booking_id/status", bookingHandler.UpdateBookingStatus)
	}
}

// addCompatibilityRoutes keeps the paths used by the first mobile release.
func addCompatibilityRoutes(rg *gin.RouterGroup, intentHandler *handlers.PaymentIntentHandler, receiptHandler *handlers.ReceiptHandler) {
	addPaymentIntentRoute(rg, PathLegacyPaymentIntent, intentHandler)
	addReceiptRoute(rg, PathLegacyReceipt, receiptHandler)
}

func addPaymentIntentRoute(rg *gin.RouterGroup, path string, h *handlers.PaymentIntentHandler) {
	rg.POST(path, h.CreatePaymentIntent)
	rejectOtherMethods(rg, path, http.MethodPost)
}

func addReceiptRoute(rg *gin.RouterGroup, path string, h *handlers.ReceiptHandler) {
	rg.POST(path, h.SendReceipt)
	rg.GET(path, h.ProbeReceipts)
	rejectOtherMethods(rg, path, http.MethodGet, http.MethodPost)
}

func rejectOtherMethods(rg *gin.RouterGroup, path string, allowed ...string) {
	rg.OPTIONS(path, handlers.Options(allowed...))

	notAllowed := handlers.MethodNotAllowed(allowed...)
	for _, m := range unsupportedMethods {
		if !contains(allowed, m) {
			rg.Handle(m, path, notAllowed)
		}
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
