package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment_intent_usecase.go -destination=../adapter/http/handlers/mocks/mock_payment_intent_usecase.go -package=mocks

var (
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrUnsupportedCurrency       = errors.New("unsupported currency")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrInvalidServiceDescription = errors.New("invalid service description")
	ErrPaymentProcessorNotReady  = errors.New("payment processor not configured")
	ErrBookingRepositoryNotReady = errors.New("booking repository not configured")
)

// IPaymentIntentUseCase encapsulates the "commission & intent calculator".
//
// Requested behavior:
//   - Validate the request before any processor call.
//   - Compute the 15% commission on top of the service amount.
//   - Create customer, ephemeral key and payment intent, in this order.
type IPaymentIntentUseCase interface {
	Create(ctx context.Context, cmd entities.PaymentIntentCommand) (entities.PaymentIntentResult, error)
}

type PaymentIntentUseCase struct {
	processor   interfaces.IPaymentProcessor
	bookingRepo interfaces.IBookingRepository
	now         func() time.Time
	newKey      func() string
}

var _ IPaymentIntentUseCase = (*PaymentIntentUseCase)(nil)

// NewPaymentIntentUseCase wires the calculator. bookingRepo may be nil when
// bookings are not stored by this service; requests carrying a booking id are
// then rejected.
func NewPaymentIntentUseCase(processor interfaces.IPaymentProcessor, bookingRepo interfaces.IBookingRepository) *PaymentIntentUseCase {
	return &PaymentIntentUseCase{
		processor:   processor,
		bookingRepo: bookingRepo,
		now:         func() time.Time { return time.Now().UTC() },
		newKey:      uuid.NewString,
	}
}

func (u *PaymentIntentUseCase) Create(ctx context.Context, cmd entities.PaymentIntentCommand) (entities.PaymentIntentResult, error) {
	log.Printf("[intent][usecase] create start currency=%q provider_email=%q booking_id=%q", cmd.Currency, cmd.ProviderEmail, cmd.BookingID)

	cmd, commission, err := validatePaymentIntentCommand(cmd)
	if err != nil {
		log.Printf("[intent][usecase] invalid request err=%v", err)
		return entities.PaymentIntentResult{}, err
	}
	if u.processor == nil {
		log.Printf("[intent][usecase] payment processor not configured")
		return entities.PaymentIntentResult{}, ErrPaymentProcessorNotReady
	}
	if cmd.BookingID != "" && u.bookingRepo == nil {
		log.Printf("[intent][usecase] booking repository not configured booking_id=%s", cmd.BookingID)
		return entities.PaymentIntentResult{}, ErrBookingRepositoryNotReady
	}
	log.Printf("[intent][usecase] commission computed original_minor=%d commission_minor=%d total_minor=%d",
		commission.OriginalMinor, commission.CommissionMinor, commission.TotalMinor)

	idempotencyKey := u.newKey()

	customerID, err := u.processor.CreateCustomer(ctx, cmd.PayerEmail, idempotencyKey+"-customer")
	if err != nil {
		log.Printf("[intent][usecase] create customer failed err=%v", err)
		return entities.PaymentIntentResult{}, err
	}
	log.Printf("[intent][usecase] customer created customer_id=%s", customerID)

	ephemeralKey, err := u.processor.CreateEphemeralKey(ctx, customerID)
	if err != nil {
		log.Printf("[intent][usecase] create ephemeral key failed customer_id=%s err=%v", customerID, err)
		return entities.PaymentIntentResult{}, err
	}

	paymentDate := u.now()
	metadata := commission.Metadata()
	metadata[entities.MetadataProviderEmail] = cmd.ProviderEmail
	metadata[entities.MetadataPayerEmail] = cmd.PayerEmail
	metadata[entities.MetadataServiceDescription] = cmd.ServiceDescription
	metadata[entities.MetadataPaymentDate] = paymentDate.Format(time.RFC3339)
	metadata[entities.MetadataPaymentMethod] = cmd.PaymentMethod
	if cmd.BookingID != "" {
		metadata[entities.MetadataBookingID] = cmd.BookingID
	}

	intent, err := u.processor.CreatePaymentIntent(ctx, entities.PaymentIntentInput{
		AmountMinor:    commission.TotalMinor,
		Currency:       entities.SupportedCurrency,
		CustomerID:     customerID,
		Metadata:       metadata,
		IdempotencyKey: idempotencyKey + "-intent",
	})
	if err != nil {
		log.Printf("[intent][usecase] create payment intent failed customer_id=%s err=%v", customerID, err)
		return entities.PaymentIntentResult{}, err
	}
	log.Printf("[intent][usecase] payment intent created payment_id=%s status=%s amount_minor=%d", intent.ID, intent.Status, intent.Amount)

	if cmd.BookingID != "" {
		booking, err := u.bookingRepo.AttachPayment(ctx, cmd.BookingID, intent.ID)
		if err != nil {
			log.Printf("[intent][usecase] attach payment failed booking_id=%s payment_id=%s err=%v", cmd.BookingID, intent.ID, err)
			return entities.PaymentIntentResult{}, err
		}
		if booking.ID == "" {
			log.Printf("[intent][usecase] booking not found booking_id=%s payment_id=%s", cmd.BookingID, intent.ID)
			return entities.PaymentIntentResult{}, ErrBookingNotFound
		}
	}

	return entities.PaymentIntentResult{
		ClientSecret:  intent.ClientSecret,
		EphemeralKey:  ephemeralKey,
		CustomerID:    customerID,
		PaymentID:     intent.ID,
		Status:        intent.Status,
		Currency:      entities.SupportedCurrency,
		ProviderEmail: cmd.ProviderEmail,
		PaymentMethod: cmd.PaymentMethod,
		PaymentDate:   paymentDate,
		BookingID:     cmd.BookingID,
		Commission:    commission,
	}, nil
}

func validatePaymentIntentCommand(cmd entities.PaymentIntentCommand) (entities.PaymentIntentCommand, entities.Commission, error) {
	if cmd.Amount == nil {
		return cmd, entities.Commission{}, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	currency := strings.TrimSpace(cmd.Currency)
	if !strings.EqualFold(currency, entities.SupportedCurrency) {
		return cmd, entities.Commission{}, unsupportedCurrencyError(currency)
	}

	commission, err := entities.ComputeCommission(*cmd.Amount)
	if err != nil {
		return cmd, entities.Commission{}, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if commission.OriginalMinor <= 0 {
		return cmd, entities.Commission{}, fmt.Errorf("%w: zero-amount payments are not accepted", ErrInvalidAmount)
	}

	cmd.PayerEmail = strings.TrimSpace(cmd.PayerEmail)
	if !isEmail(cmd.PayerEmail) {
		return cmd, entities.Commission{}, fmt.Errorf("%w: payer email %q", ErrInvalidEmail, cmd.PayerEmail)
	}
	cmd.ProviderEmail = strings.TrimSpace(cmd.ProviderEmail)
	if !isEmail(cmd.ProviderEmail) {
		return cmd, entities.Commission{}, fmt.Errorf("%w: provider email %q", ErrInvalidEmail, cmd.ProviderEmail)
	}

	cmd.ServiceDescription = strings.TrimSpace(cmd.ServiceDescription)
	if cmd.ServiceDescription == "" {
		return cmd, entities.Commission{}, ErrInvalidServiceDescription
	}

	cmd.PaymentMethod = strings.TrimSpace(cmd.PaymentMethod)
	if cmd.PaymentMethod == "" {
		cmd.PaymentMethod = entities.DefaultPaymentMethod
	}
	cmd.BookingID = strings.TrimSpace(cmd.BookingID)
	cmd.Currency = entities.SupportedCurrency

	return cmd, commission, nil
}

func unsupportedCurrencyError(currency string) error {
	return fmt.Errorf("%w %q: only %s is supported", ErrUnsupportedCurrency, strings.ToUpper(currency), strings.ToUpper(entities.SupportedCurrency))
}

func isEmail(v string) bool {
	if v == "" {
		return false
	}
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}
