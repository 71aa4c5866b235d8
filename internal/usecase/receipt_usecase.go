package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=receipt_usecase.go -destination=../adapter/http/handlers/mocks/mock_receipt_usecase.go -package=mocks

var (
	ErrInvalidPaymentID        = errors.New("invalid payment id")
	ErrPaymentNotSucceeded     = errors.New("cannot send receipt for incomplete payment")
	ErrProviderEmailMissing    = errors.New("provider email not found in payment metadata")
	ErrInvalidPaymentMetadata  = errors.New("invalid payment metadata")
	ErrBookingNotCompleted     = errors.New("booking not completed")
	ErrUnknownReceiptStrategy  = errors.New("unknown receipt strategy")
	ErrEmailSenderNotReady     = errors.New("email sender not configured")
	ErrReceiptRendererNotReady = errors.New("receipt renderer not configured")
	ErrInvoiceNotPaid          = errors.New("receipt invoice not settled")
)

// IneligibleError is returned when a payment does not qualify for a receipt.
// No invoice or email call has been made when it is returned.
type IneligibleError struct {
	PaymentID string
	Status    entities.PaymentStatus
	Metadata  map[string]string
	Err       error
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("payment %s not eligible for receipt: %v", e.PaymentID, e.Err)
}

func (e *IneligibleError) Unwrap() error { return e.Err }

// IReceiptUseCase is the receipt dispatcher.
//
// Triggers:
//   - SendForPayment: manual call with a payment reference.
//   - SendForBooking: a booking moved to Completed (guarded by ReceiptSent).
//   - OnBookingChange: subscription callback for the booking event source.
//   - HandleProcessorEvent: processor webhook, routed to SendForBooking.
type IReceiptUseCase interface {
	SendForPayment(ctx context.Context, paymentID string) (entities.ReceiptDispatch, error)
	SendForBooking(ctx context.Context, bookingID string) (entities.ReceiptDispatch, error)
	OnBookingChange(ctx context.Context, change entities.BookingChange) error
	HandleProcessorEvent(ctx context.Context, event entities.ProcessorEvent) (entities.ReceiptDispatch, error)
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.ReceiptRecord, error)
}

// ReceiptConfig selects the receipt strategy once for the process lifetime.
type ReceiptConfig struct {
	Strategy      entities.ReceiptStrategy
	SendPayerCopy bool
}

type ReceiptUseCase struct {
	processor   interfaces.IPaymentProcessor
	bookingRepo interfaces.IBookingRepository
	receiptRepo interfaces.IReceiptRepository
	deliverer   receiptDeliverer
	strategy    entities.ReceiptStrategy
	now         func() time.Time
}

var _ IReceiptUseCase = (*ReceiptUseCase)(nil)

func NewReceiptUseCase(
	cfg ReceiptConfig,
	processor interfaces.IPaymentProcessor,
	bookingRepo interfaces.IBookingRepository,
	receiptRepo interfaces.IReceiptRepository,
	renderer interfaces.IReceiptRenderer,
	mailer interfaces.IEmailSender,
) (*ReceiptUseCase, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = entities.ReceiptStrategyInvoice
	}

	var d receiptDeliverer
	switch cfg.Strategy {
	case entities.ReceiptStrategyInvoice:
		d = &invoiceDeliverer{processor: processor, mailer: mailer}
	case entities.ReceiptStrategyDocument:
		d = &documentDeliverer{renderer: renderer, mailer: mailer, payerCopy: cfg.SendPayerCopy}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReceiptStrategy, cfg.Strategy)
	}

	return &ReceiptUseCase{
		processor:   processor,
		bookingRepo: bookingRepo,
		receiptRepo: receiptRepo,
		deliverer:   d,
		strategy:    cfg.Strategy,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (u *ReceiptUseCase) SendForPayment(ctx context.Context, paymentID string) (entities.ReceiptDispatch, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[receipt][usecase] send-for-payment start payment_id=%s", paymentID)
	return u.dispatch(ctx, paymentID, "")
}

func (u *ReceiptUseCase) SendForBooking(ctx context.Context, bookingID string) (entities.ReceiptDispatch, error) {
	bookingID = strings.TrimSpace(bookingID)
	log.Printf("[receipt][usecase] send-for-booking start booking_id=%s", bookingID)
	if bookingID == "" {
		return entities.ReceiptDispatch{}, ErrInvalidBookingID
	}
	if u.bookingRepo == nil {
		log.Printf("[receipt][usecase] booking repository not configured booking_id=%s", bookingID)
		return entities.ReceiptDispatch{}, ErrBookingRepositoryNotReady
	}

	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		log.Printf("[receipt][usecase] failed loading booking booking_id=%s err=%v", bookingID, err)
		return entities.ReceiptDispatch{}, err
	}
	if booking.ID == "" {
		log.Printf("[receipt][usecase] booking not found booking_id=%s", bookingID)
		return entities.ReceiptDispatch{}, ErrBookingNotFound
	}
	if booking.ReceiptSent {
		log.Printf("[receipt][usecase] receipt already sent; skipping booking_id=%s payment_id=%s", bookingID, booking.PaymentID)
		return entities.ReceiptDispatch{Strategy: u.strategy, BookingID: bookingID, PaymentID: booking.PaymentID, Skipped: true}, nil
	}
	if booking.Status != entities.BookingStatusCompleted {
		log.Printf("[receipt][usecase] booking not completed booking_id=%s status=%s", bookingID, booking.Status)
		return entities.ReceiptDispatch{}, ErrBookingNotCompleted
	}

	return u.dispatch(ctx, strings.TrimSpace(booking.PaymentID), booking.ID)
}

// OnBookingChange reacts to a booking moving into Completed. Other changes,
// including the dispatcher's own ReceiptSent update, are ignored.
func (u *ReceiptUseCase) OnBookingChange(ctx context.Context, change entities.BookingChange) error {
	if !change.BecameCompleted() {
		return nil
	}
	if change.New.ReceiptSent {
		log.Printf("[receipt][listener] receipt already sent; skipping booking_id=%s event_id=%s", change.New.ID, change.EventID)
		return nil
	}
	log.Printf("[receipt][listener] booking completed booking_id=%s event_id=%s", change.New.ID, change.EventID)

	if _, err := u.SendForBooking(ctx, change.New.ID); err != nil {
		log.Printf("[receipt][listener] dispatch failed booking_id=%s event_id=%s err=%v", change.New.ID, change.EventID, err)
		return err
	}
	return nil
}

// HandleProcessorEvent dispatches on payment_intent.succeeded when the intent
// is linked to a booking. Unlinked payments are left to the manual trigger.
func (u *ReceiptUseCase) HandleProcessorEvent(ctx context.Context, event entities.ProcessorEvent) (entities.ReceiptDispatch, error) {
	skipped := entities.ReceiptDispatch{Strategy: u.strategy, PaymentID: event.Payment.ID, Skipped: true}
	if event.Type != entities.ProcessorEventPaymentSucceeded {
		log.Printf("[receipt][webhook] unhandled event type=%s event_id=%s", event.Type, event.ID)
		return skipped, nil
	}
	bookingID := event.Payment.Metadata[entities.MetadataBookingID]
	if bookingID == "" {
		log.Printf("[receipt][webhook] payment not linked to a booking payment_id=%s event_id=%s", event.Payment.ID, event.ID)
		return skipped, nil
	}
	skipped.BookingID = bookingID

	res, err := u.SendForBooking(ctx, bookingID)
	if errors.Is(err, ErrBookingNotCompleted) {
		log.Printf("[receipt][webhook] booking not completed yet booking_id=%s event_id=%s", bookingID, event.ID)
		return skipped, nil
	}
	return res, err
}

func (u *ReceiptUseCase) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.ReceiptRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if u.receiptRepo == nil {
		return []entities.ReceiptRecord{}, nil
	}
	return u.receiptRepo.ListByPaymentID(ctx, paymentID)
}

// dispatch runs a single best-effort pass. The booking, when given, is only
// marked after the receipt was delivered.
func (u *ReceiptUseCase) dispatch(ctx context.Context, paymentID, bookingID string) (entities.ReceiptDispatch, error) {
	if paymentID == "" {
		log.Printf("[receipt][usecase] invalid payment id (empty) booking_id=%s", bookingID)
		return entities.ReceiptDispatch{}, ErrInvalidPaymentID
	}
	if u.processor == nil {
		log.Printf("[receipt][usecase] payment processor not configured payment_id=%s", paymentID)
		return entities.ReceiptDispatch{}, ErrPaymentProcessorNotReady
	}

	payment, err := u.processor.GetPaymentIntent(ctx, paymentID)
	if err != nil {
		log.Printf("[receipt][usecase] failed fetching payment payment_id=%s err=%v", paymentID, err)
		return entities.ReceiptDispatch{}, err
	}

	if err := checkEligibility(payment); err != nil {
		log.Printf("[receipt][usecase] payment not eligible payment_id=%s status=%s err=%v", paymentID, payment.Status, err)
		return entities.ReceiptDispatch{}, err
	}

	receipt, err := entities.ReceiptFromPayment(payment)
	if err != nil {
		log.Printf("[receipt][usecase] invalid payment metadata payment_id=%s err=%v", paymentID, err)
		return entities.ReceiptDispatch{}, fmt.Errorf("%w: %v", ErrInvalidPaymentMetadata, err)
	}
	if bookingID != "" {
		receipt.BookingID = bookingID
	}

	log.Printf("[receipt][usecase] delivering receipt payment_id=%s strategy=%s provider_email=%s", paymentID, u.strategy, receipt.ProviderEmail)
	out, err := u.deliverer.Deliver(ctx, payment, receipt)
	if err != nil {
		log.Printf("[receipt][usecase] delivery failed payment_id=%s strategy=%s err=%v", paymentID, u.strategy, err)
		return entities.ReceiptDispatch{}, err
	}
	sentAt := u.now()
	log.Printf("[receipt][usecase] receipt delivered payment_id=%s invoice_id=%s sent_to=%s", paymentID, out.InvoiceID, strings.Join(out.SentTo, ","))

	if u.receiptRepo != nil {
		rec := entities.ReceiptRecord{
			ID:        uuid.NewString(),
			PaymentID: paymentID,
			BookingID: receipt.BookingID,
			Strategy:  u.strategy,
			InvoiceID: out.InvoiceID,
			SentTo:    out.SentTo,
			SentAt:    sentAt,
		}
		if _, err := u.receiptRepo.Create(ctx, rec); err != nil {
			log.Printf("[receipt][usecase] receipt log write failed payment_id=%s err=%v", paymentID, err)
		}
	}

	if bookingID != "" {
		updated, err := u.bookingRepo.MarkReceiptSent(ctx, bookingID, sentAt)
		if err != nil {
			log.Printf("[receipt][usecase] mark receipt sent failed booking_id=%s err=%v", bookingID, err)
			return entities.ReceiptDispatch{}, err
		}
		if updated.ID == "" {
			log.Printf("[receipt][usecase] booking vanished before marking booking_id=%s", bookingID)
			return entities.ReceiptDispatch{}, ErrBookingNotFound
		}
	}

	return entities.ReceiptDispatch{
		Strategy:   u.strategy,
		PaymentID:  paymentID,
		BookingID:  receipt.BookingID,
		InvoiceID:  out.InvoiceID,
		InvoiceURL: out.InvoiceURL,
		SentTo:     out.SentTo,
		Receipt:    receipt,
	}, nil
}

func checkEligibility(p entities.PaymentRecord) error {
	if p.Status != entities.PaymentStatusSucceeded {
		return &IneligibleError{PaymentID: p.ID, Status: p.Status, Metadata: p.Metadata, Err: ErrPaymentNotSucceeded}
	}
	if strings.TrimSpace(p.ProviderEmail()) == "" {
		return &IneligibleError{PaymentID: p.ID, Status: p.Status, Metadata: p.Metadata, Err: ErrProviderEmailMissing}
	}
	return nil
}
