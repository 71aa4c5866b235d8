package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace_billing/internal/adapter/http/handlers/mocks"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type stubWebhookParser struct {
	event   entities.ProcessorEvent
	err     error
	gotSig  string
	gotBody []byte
}

func (s *stubWebhookParser) ParseWebhookEvent(payload []byte, sigHeader string) (entities.ProcessorEvent, error) {
	s.gotBody = payload
	s.gotSig = sigHeader
	return s.event, s.err
}

func serveWebhook(t *testing.T, parser *stubWebhookParser, setup func(uc *mocks.MockIReceiptUseCase)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIReceiptUseCase(ctrl)
	if setup != nil {
		setup(uc)
	}
	h := NewStripeWebhookHandler(parser, uc)

	r := gin.New()
	r.POST("/v1/webhooks/stripe", h.HandleStripeEvent)

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewBufferString(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhookHandler_HandleStripeEvent(t *testing.T) {
	t.Run("bad signature", func(t *testing.T) {
		parser := &stubWebhookParser{err: errors.New("signature mismatch")}

		w := serveWebhook(t, parser, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if parser.gotSig != "t=1,v1=abc" || string(parser.gotBody) != `{"id":"evt_1"}` {
			t.Fatalf("parser received sig=%q body=%q", parser.gotSig, parser.gotBody)
		}
	})

	t.Run("dispatches receipt", func(t *testing.T) {
		event := entities.ProcessorEvent{
			ID:      "evt_1",
			Type:    entities.ProcessorEventPaymentSucceeded,
			Payment: entities.PaymentRecord{ID: "pi_1", Metadata: map[string]string{entities.MetadataBookingID: "bk-1"}},
		}
		parser := &stubWebhookParser{event: event}

		w := serveWebhook(t, parser, func(uc *mocks.MockIReceiptUseCase) {
			uc.EXPECT().HandleProcessorEvent(gomock.Any(), event).
				Return(entities.ReceiptDispatch{PaymentID: "pi_1", BookingID: "bk-1"}, nil)
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["received"] != true || body["bookingId"] != "bk-1" || body["skipped"] != false {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("dispatch failure", func(t *testing.T) {
		parser := &stubWebhookParser{event: entities.ProcessorEvent{ID: "evt_1", Type: entities.ProcessorEventPaymentSucceeded}}

		w := serveWebhook(t, parser, func(uc *mocks.MockIReceiptUseCase) {
			uc.EXPECT().HandleProcessorEvent(gomock.Any(), gomock.Any()).
				Return(entities.ReceiptDispatch{}, usecase.ErrBookingNotFound)
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
