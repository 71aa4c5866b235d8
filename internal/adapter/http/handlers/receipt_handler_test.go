package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace_billing/internal/adapter/http/handlers/mocks"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/infrastructure/notifications"
	"marketplace_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newReceiptRouter(t *testing.T) (*gin.Engine, *mocks.MockIReceiptUseCase, *ReceiptHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIReceiptUseCase(ctrl)
	h := NewReceiptHandler(uc)

	r := gin.New()
	r.POST("/v1/receipts", h.SendReceipt)
	r.GET("/v1/receipts", h.ProbeReceipts)
	r.GET("/v1/receipts/:payment_id", h.ListReceiptsByPaymentID)
	return r, uc, h
}

func deliveredDispatch() entities.ReceiptDispatch {
	c, _ := entities.ComputeCommission(1000)
	return entities.ReceiptDispatch{
		Strategy:  entities.ReceiptStrategyInvoice,
		PaymentID: "pi_1",
		InvoiceID: "in_1",
		SentTo:    []string{"provider@example.com"},
		Receipt: entities.Receipt{
			Service:        "Aircon cleaning",
			PaymentMethod:  "card",
			CommissionRate: "15%",
			Commission:     c,
			Date:           time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestReceiptHandler_SendReceipt(t *testing.T) {
	t.Run("missing payment id", func(t *testing.T) {
		r, _, _ := newReceiptRouter(t)

		w := postJSON(r, "/v1/receipts", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "Payment ID is required" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _, _ := newReceiptRouter(t)

		w := postJSON(r, "/v1/receipts", `{`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("payment trigger", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().SendForPayment(gomock.Any(), "pi_1").Return(deliveredDispatch(), nil)

		w := postJSON(r, "/v1/receipts", `{"paymentId":"pi_1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["message"] != "Receipt sent successfully" || body["invoiceId"] != "in_1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		details, ok := body["paymentDetails"].(map[string]any)
		if !ok || details["totalAmount"] != 1150.0 || details["paymentDate"] != "March 4, 2026" {
			t.Fatalf("unexpected payment details: %s", w.Body.String())
		}
	})

	t.Run("booking trigger already sent", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().SendForBooking(gomock.Any(), "bk-1").
			Return(entities.ReceiptDispatch{BookingID: "bk-1", PaymentID: "pi_1", Skipped: true}, nil)

		w := postJSON(r, "/v1/receipts", `{"bookingId":"bk-1","type":"bookingStatusChange"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["skipped"] != true || body["message"] != "Receipt already sent" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("incomplete payment", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().SendForPayment(gomock.Any(), "pi_1").Return(entities.ReceiptDispatch{}, &usecase.IneligibleError{
			PaymentID: "pi_1",
			Status:    entities.PaymentStatusRequiresPaymentMethod,
			Metadata:  map[string]string{entities.MetadataProviderEmail: "provider@example.com"},
			Err:       usecase.ErrPaymentNotSucceeded,
		})

		w := postJSON(r, "/v1/receipts", `{"paymentId":"pi_1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "Cannot send receipt for incomplete payment" || body["status"] != "requires_payment_method" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		md, ok := body["metadata"].(map[string]any)
		if !ok || md[entities.MetadataProviderEmail] != "provider@example.com" {
			t.Fatalf("expected metadata in body: %s", w.Body.String())
		}
	})

	t.Run("provider email missing", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().SendForPayment(gomock.Any(), "pi_1").Return(entities.ReceiptDispatch{}, &usecase.IneligibleError{
			PaymentID: "pi_1",
			Status:    entities.PaymentStatusSucceeded,
			Metadata:  map[string]string{},
			Err:       usecase.ErrProviderEmailMissing,
		})

		w := postJSON(r, "/v1/receipts", `{"paymentId":"pi_1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "Provider email not found in payment metadata" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("email relay failure", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().SendForPayment(gomock.Any(), "pi_1").
			Return(entities.ReceiptDispatch{}, &notifications.RelayError{StatusCode: 401, Body: "unauthorized"})

		w := postJSON(r, "/v1/receipts", `{"paymentId":"pi_1"}`)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestReceiptHandler_ProbeReceipts(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	r, _, h := newReceiptRouter(t)
	h.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }

	req := httptest.NewRequest(http.MethodGet, "/v1/receipts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["environment"] != "staging" || body["timestamp"] != "2026-03-04T10:00:00Z" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestReceiptHandler_ListReceiptsByPaymentID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().ListByPaymentID(gomock.Any(), "pi_1").Return([]entities.ReceiptRecord{
			{ID: "r-1", PaymentID: "pi_1", Strategy: entities.ReceiptStrategyInvoice, SentTo: []string{"provider@example.com"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/receipts/pi_1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		r, uc, _ := newReceiptRouter(t)
		uc.EXPECT().ListByPaymentID(gomock.Any(), "pi_1").Return(nil, errors.New("throttled"))

		req := httptest.NewRequest(http.MethodGet, "/v1/receipts/pi_1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestMapReceiptError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"payment id", usecase.ErrInvalidPaymentID, http.StatusBadRequest},
		{"booking not found", usecase.ErrBookingNotFound, http.StatusNotFound},
		{"booking not completed", usecase.ErrBookingNotCompleted, http.StatusConflict},
		{"metadata", usecase.ErrInvalidPaymentMetadata, http.StatusInternalServerError},
		{"mailer missing", usecase.ErrEmailSenderNotReady, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := mapReceiptError(tc.err); got.HTTPStatus != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, got.HTTPStatus)
		}
	}
}
