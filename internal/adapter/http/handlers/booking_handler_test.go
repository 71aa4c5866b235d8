package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace_billing/internal/adapter/http/handlers/mocks"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newBookingRouter(t *testing.T) (*gin.Engine, *mocks.MockIBookingUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBookingUseCase(ctrl)
	h := NewBookingHandler(uc)

	r := gin.New()
	r.POST("/v1/bookings", h.CreateBooking)
	r.GET("/v1/bookings/:booking_id", h.GetBooking)
	r.PATCH("/v1/bookings/:booking_id/status", h.UpdateBookingStatus)
	return r, uc
}

func patchJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		r, _ := newBookingRouter(t)

		w := postJSON(r, "/v1/bookings", `{"amount":0,"provider_email":"provider@example.com","service_description":"Haircut"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newBookingRouter(t)
		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), entities.BookingCommand{
			Amount:             1000,
			Currency:           "php",
			ProviderEmail:      "provider@example.com",
			ServiceDescription: "Haircut",
		}).Return(entities.Booking{ID: "bk-1", Amount: 1000, Currency: "php", Status: entities.BookingStatusPending, CreatedAt: now, UpdatedAt: now}, nil)

		w := postJSON(r, "/v1/bookings", `{"amount":1000,"currency":"php","provider_email":"provider@example.com","service_description":"Haircut"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		if body := decodeBody(t, w); body["status"] != "Pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestBookingHandler_GetBooking(t *testing.T) {
	r, uc := newBookingRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "bk-404").Return(entities.Booking{}, usecase.ErrBookingNotFound)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/bk-404", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBookingHandler_UpdateBookingStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		r, _ := newBookingRouter(t)

		w := patchJSON(r, "/v1/bookings/bk-1/status", `{"status":"Done"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("terminal status", func(t *testing.T) {
		r, uc := newBookingRouter(t)
		uc.EXPECT().UpdateStatus(gomock.Any(), "bk-1", entities.BookingStatusPending).Return(entities.Booking{}, usecase.ErrInvalidStatusTransition)

		w := patchJSON(r, "/v1/bookings/bk-1/status", `{"status":"Pending"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("completed", func(t *testing.T) {
		r, uc := newBookingRouter(t)
		uc.EXPECT().UpdateStatus(gomock.Any(), "bk-1", entities.BookingStatusCompleted).
			Return(entities.Booking{ID: "bk-1", Status: entities.BookingStatusCompleted}, nil)

		w := patchJSON(r, "/v1/bookings/bk-1/status", `{"status":"Completed"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["status"] != "Completed" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
