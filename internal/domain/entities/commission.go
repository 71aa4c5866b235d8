package entities

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// SupportedCurrency is the only currency accepted by the marketplace.
// Stripe expects lowercase ISO codes.
const SupportedCurrency = "php"

var (
	// CommissionRate is the platform fee applied on top of the service amount.
	CommissionRate = decimal.RequireFromString("0.15")

	minorUnitsPerMajor = decimal.NewFromInt(100)

	maxTotal = decimal.NewFromInt(MaxTotalMinor)

	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidNumber  = errors.New("amount is not a finite number")
	ErrAmountTooLarge = errors.New("amount exceeds the maximum chargeable total")
)

// MaxTotalMinor is the largest charge Stripe accepts for a single payment
// (eight digits in minor units).
const MaxTotalMinor int64 = 99_999_999

// Commission holds the amounts charged for a booking, in minor currency units
// (centavos).
//
// It is computed once when the payment intent is created and persisted in the
// intent metadata. Receipts read it back with ParseCommissionMetadata and never
// recompute it from the total.
type Commission struct {
	OriginalMinor   int64
	CommissionMinor int64
	TotalMinor      int64
}

// ComputeCommission applies CommissionRate to a major-unit amount.
//
//	originalMinor   = round(amount * 100)
//	commissionMinor = round(originalMinor * rate)
//	totalMinor      = originalMinor + commissionMinor
//
// Totals above MaxTotalMinor are rejected with ErrAmountTooLarge.
func ComputeCommission(amount float64) (Commission, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Commission{}, ErrInvalidNumber
	}
	if amount < 0 {
		return Commission{}, ErrNegativeAmount
	}

	original := decimal.NewFromFloat(amount).Mul(minorUnitsPerMajor).Round(0)
	commission := original.Mul(CommissionRate).Round(0)
	if original.Add(commission).GreaterThan(maxTotal) {
		return Commission{}, ErrAmountTooLarge
	}

	return Commission{
		OriginalMinor:   original.IntPart(),
		CommissionMinor: commission.IntPart(),
		TotalMinor:      original.Add(commission).IntPart(),
	}, nil
}

// CommissionRateLabel renders the rate as a percentage string, e.g. "15%".
func CommissionRateLabel() string {
	return CommissionRate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatMajor converts minor units into a two-decimal major-unit string.
func FormatMajor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// MajorFloat converts minor units into a major-unit float for JSON responses.
func MajorFloat(minor int64) float64 {
	f, _ := decimal.New(minor, -2).Float64()
	return f
}

// Metadata returns the commission fields of the canonical metadata schema.
func (c Commission) Metadata() map[string]string {
	return map[string]string{
		MetadataCommissionRate:   CommissionRateLabel(),
		MetadataCommissionAmount: strconv.FormatInt(c.CommissionMinor, 10),
		MetadataOriginalAmount:   strconv.FormatInt(c.OriginalMinor, 10),
		MetadataTotalAmount:      strconv.FormatInt(c.TotalMinor, 10),
	}
}

// ParseCommissionMetadata reads back the amounts written by Metadata.
// When the total is absent the charged amount is used in its place.
func ParseCommissionMetadata(md map[string]string, chargedMinor int64) (Commission, error) {
	original, err := parseMinor(md, MetadataOriginalAmount)
	if err != nil {
		return Commission{}, err
	}
	commission, err := parseMinor(md, MetadataCommissionAmount)
	if err != nil {
		return Commission{}, err
	}
	total := chargedMinor
	if _, ok := md[MetadataTotalAmount]; ok {
		if total, err = parseMinor(md, MetadataTotalAmount); err != nil {
			return Commission{}, err
		}
	}
	return Commission{OriginalMinor: original, CommissionMinor: commission, TotalMinor: total}, nil
}

func parseMinor(md map[string]string, key string) (int64, error) {
	v, ok := md[key]
	if !ok || v == "" {
		return 0, &MetadataError{Key: key}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &MetadataError{Key: key, Err: err}
	}
	return n, nil
}

// MetadataError reports a missing or malformed payment metadata field.
type MetadataError struct {
	Key string
	Err error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return "invalid payment metadata " + e.Key + ": " + e.Err.Error()
	}
	return "missing payment metadata " + e.Key
}

func (e *MetadataError) Unwrap() error { return e.Err }
