package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"
	mock_interfaces "marketplace_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func amountPtr(v float64) *float64 { return &v }

func validIntentCommand() entities.PaymentIntentCommand {
	return entities.PaymentIntentCommand{
		Amount:             amountPtr(1000),
		Currency:           "php",
		PayerEmail:         "payer@example.com",
		ProviderEmail:      "provider@example.com",
		ServiceDescription: "Aircon cleaning",
	}
}

func newTestIntentUseCase(processor interfaces.IPaymentProcessor, repo interfaces.IBookingRepository) *PaymentIntentUseCase {
	uc := NewPaymentIntentUseCase(processor, repo)
	uc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	uc.newKey = func() string { return "key-1" }
	return uc
}

func TestPaymentIntentUseCase_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entities.PaymentIntentCommand)
		want   error
	}{
		{"missing amount", func(c *entities.PaymentIntentCommand) { c.Amount = nil }, ErrInvalidAmount},
		{"zero amount", func(c *entities.PaymentIntentCommand) { c.Amount = amountPtr(0) }, ErrInvalidAmount},
		{"negative amount", func(c *entities.PaymentIntentCommand) { c.Amount = amountPtr(-5) }, ErrInvalidAmount},
		{"amount above processor maximum", func(c *entities.PaymentIntentCommand) { c.Amount = amountPtr(1e17) }, ErrInvalidAmount},
		{"amount overflowing int64", func(c *entities.PaymentIntentCommand) { c.Amount = amountPtr(1e20) }, ErrInvalidAmount},
		{"huge amount", func(c *entities.PaymentIntentCommand) { c.Amount = amountPtr(1e300) }, ErrInvalidAmount},
		{"usd", func(c *entities.PaymentIntentCommand) { c.Currency = "usd" }, ErrUnsupportedCurrency},
		{"empty currency", func(c *entities.PaymentIntentCommand) { c.Currency = "" }, ErrUnsupportedCurrency},
		{"bad payer email", func(c *entities.PaymentIntentCommand) { c.PayerEmail = "nope" }, ErrInvalidEmail},
		{"bad provider email", func(c *entities.PaymentIntentCommand) { c.ProviderEmail = "" }, ErrInvalidEmail},
		{"blank service", func(c *entities.PaymentIntentCommand) { c.ServiceDescription = "  " }, ErrInvalidServiceDescription},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			// No EXPECT: any processor call fails the test.
			processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
			uc := newTestIntentUseCase(processor, nil)

			cmd := validIntentCommand()
			tc.mutate(&cmd)
			_, err := uc.Create(context.Background(), cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPaymentIntentUseCase_Create_UnsupportedCurrencyMessage(t *testing.T) {
	uc := newTestIntentUseCase(nil, nil)
	cmd := validIntentCommand()
	cmd.Currency = "usd"

	_, err := uc.Create(context.Background(), cmd)
	if err == nil || err.Error() != `unsupported currency "USD": only PHP is supported` {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPaymentIntentUseCase_Create_ProcessorNotConfigured(t *testing.T) {
	uc := newTestIntentUseCase(nil, nil)
	_, err := uc.Create(context.Background(), validIntentCommand())
	if !errors.Is(err, ErrPaymentProcessorNotReady) {
		t.Fatalf("expected ErrPaymentProcessorNotReady, got %v", err)
	}
}

func TestPaymentIntentUseCase_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
	uc := newTestIntentUseCase(processor, nil)

	gomock.InOrder(
		processor.EXPECT().CreateCustomer(gomock.Any(), "payer@example.com", "key-1-customer").Return("cus_1", nil),
		processor.EXPECT().CreateEphemeralKey(gomock.Any(), "cus_1").Return("ek_secret", nil),
		processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.AssignableToTypeOf(entities.PaymentIntentInput{})).DoAndReturn(
			func(_ context.Context, in entities.PaymentIntentInput) (entities.PaymentRecord, error) {
				if in.AmountMinor != 115000 || in.Currency != "php" || in.CustomerID != "cus_1" || in.IdempotencyKey != "key-1-intent" {
					t.Fatalf("unexpected intent input: %+v", in)
				}
				want := map[string]string{
					entities.MetadataProviderEmail:      "provider@example.com",
					entities.MetadataPayerEmail:         "payer@example.com",
					entities.MetadataServiceDescription: "Aircon cleaning",
					entities.MetadataCommissionRate:     "15%",
					entities.MetadataCommissionAmount:   "15000",
					entities.MetadataOriginalAmount:     "100000",
					entities.MetadataTotalAmount:        "115000",
					entities.MetadataPaymentDate:        "2026-03-04T05:06:07Z",
					entities.MetadataPaymentMethod:      "card",
				}
				for k, v := range want {
					if in.Metadata[k] != v {
						t.Fatalf("metadata %s: expected %q, got %q", k, v, in.Metadata[k])
					}
				}
				if _, ok := in.Metadata[entities.MetadataBookingID]; ok {
					t.Fatalf("booking id must be absent when not requested")
				}
				return entities.PaymentRecord{
					ID:           "pi_1",
					CustomerID:   "cus_1",
					Amount:       in.AmountMinor,
					Currency:     in.Currency,
					Status:       entities.PaymentStatusRequiresPaymentMethod,
					ClientSecret: "pi_1_secret",
					Metadata:     in.Metadata,
				}, nil
			},
		),
	)

	cmd := validIntentCommand()
	cmd.Currency = " PHP "
	res, err := uc.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ClientSecret != "pi_1_secret" || res.EphemeralKey != "ek_secret" || res.CustomerID != "cus_1" || res.PaymentID != "pi_1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Commission.OriginalMinor != 100000 || res.Commission.CommissionMinor != 15000 || res.Commission.TotalMinor != 115000 {
		t.Fatalf("unexpected commission: %+v", res.Commission)
	}
	if res.Currency != "php" || res.PaymentMethod != "card" || res.ProviderEmail != "provider@example.com" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPaymentIntentUseCase_Create_ProcessorErrors(t *testing.T) {
	t.Run("customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestIntentUseCase(processor, nil)

		processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("stripe down"))

		_, err := uc.Create(context.Background(), validIntentCommand())
		if err == nil || err.Error() != "stripe down" {
			t.Fatalf("expected processor error, got %v", err)
		}
	})

	t.Run("ephemeral key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestIntentUseCase(processor, nil)

		processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("cus_1", nil)
		processor.EXPECT().CreateEphemeralKey(gomock.Any(), "cus_1").Return("", errors.New("ek failed"))

		_, err := uc.Create(context.Background(), validIntentCommand())
		if err == nil || err.Error() != "ek failed" {
			t.Fatalf("expected processor error, got %v", err)
		}
	})

	t.Run("intent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestIntentUseCase(processor, nil)

		processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("cus_1", nil)
		processor.EXPECT().CreateEphemeralKey(gomock.Any(), "cus_1").Return("ek", nil)
		processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("card declined"))

		_, err := uc.Create(context.Background(), validIntentCommand())
		if err == nil || err.Error() != "card declined" {
			t.Fatalf("expected processor error, got %v", err)
		}
	})
}

func TestPaymentIntentUseCase_Create_WithBooking(t *testing.T) {
	t.Run("repository not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestIntentUseCase(processor, nil)

		cmd := validIntentCommand()
		cmd.BookingID = "bk-1"
		_, err := uc.Create(context.Background(), cmd)
		if !errors.Is(err, ErrBookingRepositoryNotReady) {
			t.Fatalf("expected ErrBookingRepositoryNotReady, got %v", err)
		}
	})

	t.Run("attaches payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestIntentUseCase(processor, repo)

		processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("cus_1", nil)
		processor.EXPECT().CreateEphemeralKey(gomock.Any(), "cus_1").Return("ek", nil)
		processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in entities.PaymentIntentInput) (entities.PaymentRecord, error) {
				if in.Metadata[entities.MetadataBookingID] != "bk-1" {
					t.Fatalf("expected booking id in metadata, got %+v", in.Metadata)
				}
				return entities.PaymentRecord{ID: "pi_1", Status: entities.PaymentStatusRequiresPaymentMethod}, nil
			},
		)
		repo.EXPECT().AttachPayment(gomock.Any(), "bk-1", "pi_1").Return(entities.Booking{ID: "bk-1", PaymentID: "pi_1"}, nil)

		cmd := validIntentCommand()
		cmd.BookingID = " bk-1 "
		res, err := uc.Create(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.BookingID != "bk-1" {
			t.Fatalf("expected booking id bk-1, got %q", res.BookingID)
		}
	})

	t.Run("booking not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := newTestIntentUseCase(processor, repo)

		processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("cus_1", nil)
		processor.EXPECT().CreateEphemeralKey(gomock.Any(), "cus_1").Return("ek", nil)
		processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{ID: "pi_1"}, nil)
		repo.EXPECT().AttachPayment(gomock.Any(), "bk-x", "pi_1").Return(entities.Booking{}, nil)

		cmd := validIntentCommand()
		cmd.BookingID = "bk-x"
		_, err := uc.Create(context.Background(), cmd)
		if !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestPaymentIntentUseCase_Create_RoundsFractionalAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
	uc := newTestIntentUseCase(processor, nil)

	processor.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return("cus_1", nil)
	processor.EXPECT().CreateEphemeralKey(gomock.Any(), gomock.Any()).Return("ek", nil)
	processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in entities.PaymentIntentInput) (entities.PaymentRecord, error) {
			if in.AmountMinor != 1264 {
				t.Fatalf("expected 1264 minor units, got %d", in.AmountMinor)
			}
			return entities.PaymentRecord{ID: "pi_2"}, nil
		},
	)

	cmd := validIntentCommand()
	cmd.Amount = amountPtr(10.99)
	cmd.PaymentMethod = " gcash "
	res, err := uc.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.EqualFold(res.PaymentMethod, "gcash") {
		t.Fatalf("expected trimmed payment method, got %q", res.PaymentMethod)
	}
}
