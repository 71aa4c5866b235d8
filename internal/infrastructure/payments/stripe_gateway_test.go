package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"marketplace_billing/internal/domain/entities"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func TestNewStripeGateway_MissingKey(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("STRIPE_MOCK", "")

	_, err := NewStripeGateway("", "")
	if !errors.Is(err, ErrMissingStripeSecretKey) {
		t.Fatalf("expected ErrMissingStripeSecretKey, got %v", err)
	}
}

func TestStripeGateway_MockLifecycle(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	g, err := NewStripeGateway("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	cus, err := g.CreateCustomer(ctx, "payer@example.com", "k-customer")
	if err != nil || cus == "" {
		t.Fatalf("unexpected customer: %q err=%v", cus, err)
	}
	pi, err := g.CreatePaymentIntent(ctx, entities.PaymentIntentInput{
		AmountMinor: 115000,
		Currency:    "php",
		CustomerID:  cus,
		Metadata:    map[string]string{entities.MetadataProviderEmail: "provider@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pi.Status != entities.PaymentStatusSucceeded || pi.ClientSecret == "" {
		t.Fatalf("unexpected mock intent: %+v", pi)
	}

	got, err := g.GetPaymentIntent(ctx, pi.ID)
	if err != nil || got.ProviderEmail() != "provider@example.com" {
		t.Fatalf("unexpected retrieve: %+v err=%v", got, err)
	}

	_, err = g.GetPaymentIntent(ctx, "pi_missing")
	var pe *ProcessorError
	if !errors.As(err, &pe) || pe.HTTPStatus != 404 {
		t.Fatalf("expected 404 processor error, got %v", err)
	}

	inv, err := g.CreateInvoice(ctx, entities.InvoiceInput{CustomerID: cus, AmountMinor: 115000, Currency: "php"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv, err = g.FinalizeInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != "open" {
		t.Fatalf("expected finalized invoice to be open, got %q", inv.Status)
	}
	if inv, err = g.MarkInvoicePaid(ctx, inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv, err = g.SendInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != entities.InvoiceStatusPaid || inv.HostedURL == "" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestWrapStripeError(t *testing.T) {
	err := wrapStripeError("create customer", &stripe.Error{Msg: "Invalid email address", HTTPStatusCode: 400})
	var pe *ProcessorError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProcessorError, got %T", err)
	}
	if pe.Message != "Invalid email address" || pe.HTTPStatus != 400 {
		t.Fatalf("unexpected processor error: %+v", pe)
	}
	if wrapStripeError("noop", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func paymentIntentEvent(t *testing.T, eventType string) []byte {
	t.Helper()
	raw, _ := json.Marshal(&stripe.PaymentIntent{
		ID:       "pi_1",
		Amount:   115000,
		Currency: "php",
		Status:   stripe.PaymentIntentStatusSucceeded,
		Customer: &stripe.Customer{ID: "cus_1"},
		Metadata: map[string]string{entities.MetadataBookingID: "bk-1"},
	})
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_1",
		"object":      "event",
		"type":        eventType,
		"api_version": "2022-11-15",
		"data":        map[string]json.RawMessage{"object": raw},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return payload
}

func TestStripeGateway_ParseWebhookEvent(t *testing.T) {
	g := &StripeGateway{webhookSecret: "whsec_test"}
	payload := paymentIntentEvent(t, "payment_intent.succeeded")

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    "whsec_test",
		Timestamp: time.Now(),
	})

	ev, err := g.ParseWebhookEvent(signed.Payload, signed.Header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != entities.ProcessorEventPaymentSucceeded {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Payment.ID != "pi_1" || ev.Payment.Status != entities.PaymentStatusSucceeded || ev.Payment.CustomerID != "cus_1" {
		t.Fatalf("unexpected payment: %+v", ev.Payment)
	}
	if ev.Payment.Metadata[entities.MetadataBookingID] != "bk-1" {
		t.Fatalf("expected booking metadata, got %+v", ev.Payment.Metadata)
	}

	if _, err := g.ParseWebhookEvent(payload, "t=1,v1=bad"); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestStripeGateway_ParseWebhookEvent_NoSecret(t *testing.T) {
	g := &StripeGateway{}
	if _, err := g.ParseWebhookEvent([]byte("{}"), ""); !errors.Is(err, ErrMissingWebhookSecret) {
		t.Fatalf("expected ErrMissingWebhookSecret, got %v", err)
	}
}
