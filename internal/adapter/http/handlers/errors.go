package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marketplace_billing/internal/infrastructure/notifications"
	"marketplace_billing/internal/infrastructure/payments"
	"marketplace_billing/internal/usecase"
	"marketplace_billing/pkg"

	"github.com/gin-gonic/gin"
)

// mapDependencyError covers failures of the processor, the store and the mail
// relay. The underlying message is always returned as details.
func mapDependencyError(err error) *pkg.AppError {
	var pe *payments.ProcessorError
	var re *notifications.RelayError
	switch {
	case errors.Is(err, usecase.ErrPaymentProcessorNotReady),
		errors.Is(err, usecase.ErrBookingRepositoryNotReady),
		errors.Is(err, usecase.ErrEmailSenderNotReady),
		errors.Is(err, usecase.ErrReceiptRendererNotReady):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Service dependency not configured", err, http.StatusServiceUnavailable)
	case errors.As(err, &pe):
		if pe.HTTPStatus == http.StatusNotFound {
			return pkg.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found", errors.New(pe.Message), http.StatusNotFound)
		}
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider error", errors.New(pe.Message), http.StatusInternalServerError)
	case errors.As(err, &re):
		return pkg.NewDomainError("EMAIL_DELIVERY_FAILED", "Email delivery failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// MethodNotAllowed answers a route with the allowed method list.
func MethodNotAllowed(allowed ...string) gin.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":          "Method not allowed",
			"method":         c.Request.Method,
			"allowedMethods": allowed,
		})
	}
}

// Options answers OPTIONS requests that carry no Origin header and so are not
// handled by the CORS middleware.
func Options(allowed ...string) gin.HandlerFunc {
	allow := strings.Join(append(append([]string{}, allowed...), http.MethodOptions), ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.Status(http.StatusOK)
	}
}
