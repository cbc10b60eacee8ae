package domain

import "github.com/shopspring/decimal"

// Boundary policy limits. Enforced before any store access, not by the
// engine's arithmetic.
var (
	// MaxCashAmount caps a single deposit or withdrawal.
	MaxCashAmount = decimal.NewFromInt(10_000_000)

	// MaxTransferAmount caps a single transfer.
	MaxTransferAmount = decimal.NewFromInt(1_000_000)
)

const (
	// MaxDescriptionLength caps the free-text description on any entry.
	MaxDescriptionLength = 255

	// MaxIdempotencyKeyLength caps a client-supplied idempotency key.
	MaxIdempotencyKeyLength = 255
)

// ValidateCashAmount checks a deposit or withdrawal amount against the
// boundary policy: positive, at most two decimal places, within limit.
func ValidateCashAmount(amount decimal.Decimal) error {
	return validateAmount(amount, MaxCashAmount)
}

// ValidateTransferAmount checks a transfer amount against the boundary policy.
func ValidateTransferAmount(amount decimal.Decimal) error {
	return validateAmount(amount, MaxTransferAmount)
}

func validateAmount(amount, limit decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(limit) {
		return ErrAmountTooLarge
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateDescription checks an optional free-text description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateIdempotencyKey checks a client-supplied idempotency key.
// An empty key means the caller opted out of idempotent handling.
func ValidateIdempotencyKey(key string) error {
	if len(key) == 0 || len(key) > MaxIdempotencyKeyLength {
		return ErrInvalidIdempotencyKey
	}
	return nil
}
