package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/ephemeralkey"
	"github.com/stripe/stripe-go/v82/invoice"
	"github.com/stripe/stripe-go/v82/invoiceitem"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

// EphemeralKeyAPIVersion is the API version the mobile payment sheet expects.
const EphemeralKeyAPIVersion = "2022-11-15"

const invoiceDaysUntilDue = 1

var (
	ErrMissingStripeSecretKey     = errors.New("missing STRIPE_SECRET_KEY")
	ErrStripeGatewayNotConfigured = errors.New("stripe gateway not configured")
	ErrMissingWebhookSecret       = errors.New("missing STRIPE_WEBHOOK_SECRET")
	ErrPaymentNotFound            = errors.New("payment not found")
)

// ProcessorError carries a failed Stripe call. Message is the processor's own
// message, surfaced to API callers as the error details.
type ProcessorError struct {
	Op         string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("stripe %s: %s", e.Op, e.Message)
}

func (e *ProcessorError) Unwrap() error { return e.Err }

func wrapStripeError(op string, err error) error {
	if err == nil {
		return nil
	}
	pe := &ProcessorError{Op: op, Message: err.Error(), Err: err}
	var se *stripe.Error
	if errors.As(err, &se) {
		pe.Message = se.Msg
		pe.HTTPStatus = se.HTTPStatusCode
	}
	return pe
}

// StripeGateway implements the payment processor port on top of stripe-go.
// In mock mode it keeps intents and invoices in memory; mock intents are
// created already succeeded so receipts can be exercised end to end.
type StripeGateway struct {
	mockMode      bool
	webhookSecret string

	mu       sync.Mutex
	intents  map[string]entities.PaymentRecord
	invoices map[string]entities.Invoice
}

var _ interfaces.IPaymentProcessor = (*StripeGateway)(nil)

func NewStripeGateway(secretKey, webhookSecret string) (*StripeGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &StripeGateway{
			mockMode:      true,
			webhookSecret: webhookSecret,
			intents:       map[string]entities.PaymentRecord{},
			invoices:      map[string]entities.Invoice{},
		}, nil
	}

	if secretKey == "" {
		log.Printf("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	stripe.Key = secretKey
	log.Printf("[payment][gateway] Stripe client initialized")

	return &StripeGateway{webhookSecret: webhookSecret}, nil
}

func (g *StripeGateway) ready() error {
	if g == nil {
		return ErrStripeGatewayNotConfigured
	}
	return nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, idempotencyKey string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	if g.mockMode {
		id := "cus_mock_" + shortID()
		log.Printf("[payment][gateway] mock customer created customer_id=%s", id)
		return id, nil
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	c, err := customer.New(params)
	if err != nil {
		log.Printf("[payment][gateway] create customer failed err=%v", err)
		return "", wrapStripeError("create customer", err)
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	if g.mockMode {
		return "ek_mock_" + shortID(), nil
	}

	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(EphemeralKeyAPIVersion),
	}
	params.Context = ctx
	k, err := ephemeralkey.New(params)
	if err != nil {
		log.Printf("[payment][gateway] create ephemeral key failed customer_id=%s err=%v", customerID, err)
		return "", wrapStripeError("create ephemeral key", err)
	}
	return k.Secret, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, in entities.PaymentIntentInput) (entities.PaymentRecord, error) {
	if err := g.ready(); err != nil {
		return entities.PaymentRecord{}, err
	}
	if g.mockMode {
		id := "pi_mock_" + shortID()
		rec := entities.PaymentRecord{
			ID:           id,
			CustomerID:   in.CustomerID,
			Amount:       in.AmountMinor,
			Currency:     in.Currency,
			Status:       entities.PaymentStatusSucceeded,
			ClientSecret: id + "_secret_mock",
			Metadata:     copyMetadata(in.Metadata),
		}
		g.mu.Lock()
		g.intents[id] = rec
		g.mu.Unlock()
		log.Printf("[payment][gateway] mock intent created payment_id=%s amount_minor=%d", id, in.AmountMinor)
		return rec, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.AmountMinor),
		Currency: stripe.String(in.Currency),
		Customer: stripe.String(in.CustomerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		log.Printf("[payment][gateway] create payment intent failed customer_id=%s err=%v", in.CustomerID, err)
		return entities.PaymentRecord{}, wrapStripeError("create payment intent", err)
	}
	return paymentRecordFromStripe(pi), nil
}

func (g *StripeGateway) GetPaymentIntent(ctx context.Context, paymentID string) (entities.PaymentRecord, error) {
	if err := g.ready(); err != nil {
		return entities.PaymentRecord{}, err
	}
	if g.mockMode {
		g.mu.Lock()
		rec, ok := g.intents[paymentID]
		g.mu.Unlock()
		if !ok {
			return entities.PaymentRecord{}, &ProcessorError{Op: "retrieve payment intent", Message: "No such payment_intent: " + paymentID, HTTPStatus: 404, Err: ErrPaymentNotFound}
		}
		return rec, nil
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(paymentID, params)
	if err != nil {
		log.Printf("[payment][gateway] retrieve payment intent failed payment_id=%s err=%v", paymentID, err)
		return entities.PaymentRecord{}, wrapStripeError("retrieve payment intent", err)
	}
	return paymentRecordFromStripe(pi), nil
}

func (g *StripeGateway) CreateInvoice(ctx context.Context, in entities.InvoiceInput) (entities.Invoice, error) {
	if err := g.ready(); err != nil {
		return entities.Invoice{}, err
	}
	if g.mockMode {
		inv := entities.Invoice{ID: "in_mock_" + shortID(), Status: "draft", CustomerID: in.CustomerID}
		g.mu.Lock()
		g.invoices[inv.ID] = inv
		g.mu.Unlock()
		return inv, nil
	}

	params := &stripe.InvoiceParams{
		Customer:         stripe.String(in.CustomerID),
		AutoAdvance:      stripe.Bool(false),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(invoiceDaysUntilDue),
		Description:      stripe.String(in.Description),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	for _, f := range in.CustomFields {
		params.CustomFields = append(params.CustomFields, &stripe.InvoiceCustomFieldParams{
			Name:  stripe.String(f.Name),
			Value: stripe.String(f.Value),
		})
	}

	inv, err := invoice.New(params)
	if err != nil {
		log.Printf("[payment][gateway] create invoice failed customer_id=%s err=%v", in.CustomerID, err)
		return entities.Invoice{}, wrapStripeError("create invoice", err)
	}

	if in.AmountMinor > 0 {
		itemParams := &stripe.InvoiceItemParams{
			Customer:    stripe.String(in.CustomerID),
			Invoice:     stripe.String(inv.ID),
			Amount:      stripe.Int64(in.AmountMinor),
			Currency:    stripe.String(in.Currency),
			Description: stripe.String(in.Description),
		}
		itemParams.Context = ctx
		if _, err := invoiceitem.New(itemParams); err != nil {
			log.Printf("[payment][gateway] add invoice item failed invoice_id=%s err=%v", inv.ID, err)
			return entities.Invoice{}, wrapStripeError("add invoice item", err)
		}
	}
	return invoiceFromStripe(inv), nil
}

func (g *StripeGateway) FinalizeInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	if err := g.ready(); err != nil {
		return entities.Invoice{}, err
	}
	if g.mockMode {
		return g.mockInvoiceTransition(invoiceID, "open")
	}

	params := &stripe.InvoiceFinalizeInvoiceParams{}
	params.Context = ctx
	inv, err := invoice.FinalizeInvoice(invoiceID, params)
	if err != nil {
		log.Printf("[payment][gateway] finalize invoice failed invoice_id=%s err=%v", invoiceID, err)
		return entities.Invoice{}, wrapStripeError("finalize invoice", err)
	}
	return invoiceFromStripe(inv), nil
}

// MarkInvoicePaid settles a finalized invoice out of band. The amount was
// already collected by the payment intent, so no charge is attempted.
func (g *StripeGateway) MarkInvoicePaid(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	if err := g.ready(); err != nil {
		return entities.Invoice{}, err
	}
	if g.mockMode {
		return g.mockInvoiceTransition(invoiceID, entities.InvoiceStatusPaid)
	}

	params := &stripe.InvoicePayParams{PaidOutOfBand: stripe.Bool(true)}
	params.Context = ctx
	inv, err := invoice.Pay(invoiceID, params)
	if err != nil {
		log.Printf("[payment][gateway] mark invoice paid failed invoice_id=%s err=%v", invoiceID, err)
		return entities.Invoice{}, wrapStripeError("pay invoice", err)
	}
	return invoiceFromStripe(inv), nil
}

func (g *StripeGateway) SendInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	if err := g.ready(); err != nil {
		return entities.Invoice{}, err
	}
	if g.mockMode {
		return g.mockInvoiceTransition(invoiceID, "")
	}

	params := &stripe.InvoiceSendInvoiceParams{}
	params.Context = ctx
	inv, err := invoice.SendInvoice(invoiceID, params)
	if err != nil {
		log.Printf("[payment][gateway] send invoice failed invoice_id=%s err=%v", invoiceID, err)
		return entities.Invoice{}, wrapStripeError("send invoice", err)
	}
	return invoiceFromStripe(inv), nil
}

func (g *StripeGateway) mockInvoiceTransition(invoiceID, status string) (entities.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	inv, ok := g.invoices[invoiceID]
	if !ok {
		return entities.Invoice{}, &ProcessorError{Op: "invoice", Message: "No such invoice: " + invoiceID, HTTPStatus: 404}
	}
	if status != "" {
		inv.Status = status
	}
	inv.HostedURL = "https://invoice.stripe.mock/" + invoiceID
	inv.PDFURL = inv.HostedURL + "/pdf"
	g.invoices[invoiceID] = inv
	return inv, nil
}

// ParseWebhookEvent verifies the Stripe-Signature header and decodes the
// event. Only payment intent events carry a Payment.
func (g *StripeGateway) ParseWebhookEvent(payload []byte, signatureHeader string) (entities.ProcessorEvent, error) {
	if g == nil || g.webhookSecret == "" {
		return entities.ProcessorEvent{}, ErrMissingWebhookSecret
	}
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return entities.ProcessorEvent{}, err
	}
	return processorEventFromStripe(event)
}

func processorEventFromStripe(event stripe.Event) (entities.ProcessorEvent, error) {
	out := entities.ProcessorEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "payment_intent.") || event.Data == nil {
		return out, nil
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return entities.ProcessorEvent{}, fmt.Errorf("decode payment intent: %w", err)
	}
	out.Payment = paymentRecordFromStripe(&pi)
	return out, nil
}

func paymentRecordFromStripe(pi *stripe.PaymentIntent) entities.PaymentRecord {
	rec := entities.PaymentRecord{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       entities.PaymentStatus(pi.Status),
		ClientSecret: pi.ClientSecret,
		Metadata:     copyMetadata(pi.Metadata),
	}
	if pi.Customer != nil {
		rec.CustomerID = pi.Customer.ID
	}
	return rec
}

func invoiceFromStripe(inv *stripe.Invoice) entities.Invoice {
	out := entities.Invoice{
		ID:        inv.ID,
		Status:    string(inv.Status),
		HostedURL: inv.HostedInvoiceURL,
		PDFURL:    inv.InvoicePDF,
	}
	if inv.Customer != nil {
		out.CustomerID = inv.Customer.ID
	}
	return out
}

func copyMetadata(md map[string]string) map[string]string {
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func isPaymentGatewayMockEnabled() bool {
	return envFlag("PAYMENT_GATEWAY_MOCK", "STRIPE_MOCK")
}

func envFlag(keys ...string) bool {
	for _, key := range keys {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
