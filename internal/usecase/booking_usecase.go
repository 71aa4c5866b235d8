package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking_usecase.go -destination=../adapter/http/handlers/mocks/mock_booking_usecase.go -package=mocks

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidBookingID        = errors.New("invalid booking id")
	ErrInvalidBookingStatus    = errors.New("invalid booking status")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
)

// IBookingUseCase exposes the booking operations the dispatcher depends on.
//
// Bookings are normally written by the marketplace's booking system; these
// operations let the same lifecycle be driven through this service:
//   - create a Pending booking
//   - move it to Completed (which triggers the receipt) or Cancelled
type IBookingUseCase interface {
	Create(ctx context.Context, cmd entities.BookingCommand) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (entities.Booking, error)
}

type BookingUseCase struct {
	repo interfaces.IBookingRepository
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo}
}

func (u *BookingUseCase) Create(ctx context.Context, cmd entities.BookingCommand) (entities.Booking, error) {
	if math.IsNaN(cmd.Amount) || math.IsInf(cmd.Amount, 0) || cmd.Amount <= 0 {
		return entities.Booking{}, ErrInvalidAmount
	}
	currency := strings.TrimSpace(cmd.Currency)
	if currency == "" {
		currency = entities.SupportedCurrency
	}
	if !strings.EqualFold(currency, entities.SupportedCurrency) {
		return entities.Booking{}, unsupportedCurrencyError(currency)
	}
	providerEmail := strings.TrimSpace(cmd.ProviderEmail)
	if !isEmail(providerEmail) {
		return entities.Booking{}, ErrInvalidEmail
	}
	payerEmail := strings.TrimSpace(cmd.PayerEmail)
	if payerEmail != "" && !isEmail(payerEmail) {
		return entities.Booking{}, ErrInvalidEmail
	}

	now := time.Now().UTC()
	b := entities.Booking{
		ID:                 uuid.NewString(),
		Amount:             cmd.Amount,
		Currency:           entities.SupportedCurrency,
		Status:             entities.BookingStatusPending,
		ProviderEmail:      providerEmail,
		PayerEmail:         payerEmail,
		ServiceDescription: strings.TrimSpace(cmd.ServiceDescription),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return u.repo.Create(ctx, b)
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// UpdateStatus applies a status transition. The repository update is
// conditional on the status read here, so a concurrent change surfaces as
// ErrInvalidStatusTransition instead of being overwritten.
func (u *BookingUseCase) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (entities.Booking, error) {
	if !status.Valid() {
		return entities.Booking{}, ErrInvalidBookingStatus
	}

	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if !current.Status.CanTransitionTo(status) {
		return entities.Booking{}, ErrInvalidStatusTransition
	}

	updated, err := u.repo.UpdateStatus(ctx, current.ID, current.Status, status)
	if err != nil {
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		return entities.Booking{}, ErrInvalidStatusTransition
	}
	return updated, nil
}
