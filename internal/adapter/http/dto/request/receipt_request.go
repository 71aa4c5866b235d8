package request

import "strings"

// ReceiptTypeBookingStatusChange marks a receipt request coming from the
// booking system rather than a manual trigger.
const ReceiptTypeBookingStatusChange = "bookingStatusChange"

// ReceiptRequest is the payload of POST /v1/receipts. Either paymentId, or
// bookingId with type "bookingStatusChange", must be present.
type ReceiptRequest struct {
	PaymentID string `json:"paymentId"`
	BookingID string `json:"bookingId"`
	Type      string `json:"type"`
}

// IsBookingTrigger reports whether the request targets a booking.
func (r ReceiptRequest) IsBookingTrigger() bool {
	return strings.TrimSpace(r.BookingID) != "" &&
		(r.Type == ReceiptTypeBookingStatusChange || strings.TrimSpace(r.PaymentID) == "")
}
