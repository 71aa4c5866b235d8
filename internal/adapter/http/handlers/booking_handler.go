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

var errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking godoc
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      request.BookingCreateRequest  true  "Booking"
// @Success      201   {object}  response.BookingResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.BookingCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[booking][handler] invalid payload err=%v", err)
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[booking][handler] create failed err=%v", err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[booking][handler] create success booking_id=%s", booking.ID)

	c.JSON(http.StatusCreated, response.FromBooking(booking))
}

// GetBooking godoc
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200         {object}  response.BookingResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /bookings/{booking_id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")

	booking, err := h.usecase.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		log.Printf("[booking][handler] get failed booking_id=%s err=%v", bookingID, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

// UpdateBookingStatus godoc
// @Summary      Change a booking status
// @Description  Pending bookings can move to Completed or Cancelled. Completing a booking triggers the provider receipt through the booking change feed.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        booking_id  path      string                              true  "Booking ID"
// @Param        body        body      request.BookingStatusUpdateRequest  true  "New status"
// @Success      200         {object}  response.BookingResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /bookings/{booking_id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var payload request.BookingStatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[booking][handler] invalid status payload booking_id=%s err=%v", bookingID, err)
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := h.usecase.UpdateStatus(c.Request.Context(), bookingID, entities.BookingStatus(payload.Status))
	if err != nil {
		log.Printf("[booking][handler] status update failed booking_id=%s status=%s err=%v", bookingID, payload.Status, err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[booking][handler] status updated booking_id=%s status=%s", booking.ID, booking.Status)

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func mapBookingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID), errors.Is(err, usecase.ErrInvalidBookingStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrInvalidEmail), errors.Is(err, usecase.ErrUnsupportedCurrency):
		return pkg.NewDomainError("INVALID_BOOKING_INPUT", "Invalid booking payload", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Booking status cannot be changed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
