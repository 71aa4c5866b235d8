package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace_billing/internal/adapter/http/handlers"
	"marketplace_billing/internal/adapter/http/handlers/mocks"
	"marketplace_billing/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTestEngine(t *testing.T) (*gin.Engine, *mocks.MockIPaymentIntentUseCase, *mocks.MockIReceiptUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	intentUC := mocks.NewMockIPaymentIntentUseCase(ctrl)
	receiptUC := mocks.NewMockIReceiptUseCase(ctrl)

	intentHandler := handlers.NewPaymentIntentHandler(intentUC)
	receiptHandler := handlers.NewReceiptHandler(receiptUC)

	r := gin.New()
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, intentHandler, receiptHandler, nil)
	addCompatibilityRoutes(r.Group("/api"), intentHandler, receiptHandler)
	return r, intentUC, receiptUC
}

func TestPaymentRoutes_MethodNotAllowed(t *testing.T) {
	r, _, _ := newTestEngine(t)

	cases := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodGet, "/v1/payment-intents", "POST"},
		{http.MethodDelete, "/api/create-payment-intent", "POST"},
		{http.MethodPut, "/v1/receipts", "GET, POST"},
		{http.MethodPatch, "/api/send-receipt", "GET, POST"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, w.Code)
		}
		if got := w.Header().Get("Allow"); got != tc.allow {
			t.Fatalf("%s %s: expected Allow %q, got %q", tc.method, tc.path, tc.allow, got)
		}
	}
}

func TestPaymentRoutes_Options(t *testing.T) {
	r, _, _ := newTestEngine(t)

	cases := []struct {
		path  string
		allow string
	}{
		{"/v1/payment-intents", "POST, OPTIONS"},
		{"/api/create-payment-intent", "POST, OPTIONS"},
		{"/v1/receipts", "GET, POST, OPTIONS"},
		{"/api/send-receipt", "GET, POST, OPTIONS"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodOptions, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("OPTIONS %s: expected 200, got %d", tc.path, w.Code)
		}
		if got := w.Header().Get("Allow"); got != tc.allow {
			t.Fatalf("OPTIONS %s: expected Allow %q, got %q", tc.path, tc.allow, got)
		}
	}
}

func TestPaymentRoutes_CompatibilityAlias(t *testing.T) {
	r, _, receiptUC := newTestEngine(t)
	receiptUC.EXPECT().SendForPayment(gomock.Any(), "pi_1").
		Return(entities.ReceiptDispatch{PaymentID: "pi_1", Skipped: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/send-receipt", bytes.NewBufferString(`{"paymentId":"pi_1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPaymentRoutes_WebhookDisabledWithoutSecret(t *testing.T) {
	r, _, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPingRoute(t *testing.T) {
	r, _, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
