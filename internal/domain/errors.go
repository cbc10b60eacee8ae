package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInactive     = errors.New("account is not active")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCustomerNotFound    = errors.New("customer not found")

	// Transaction errors
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountTooLarge     = errors.New("amount exceeds operation limit")
	ErrAmountPrecision    = errors.New("amount has more than two decimal places")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrEntryNotFound      = errors.New("ledger entry not found")

	// ErrDuplicateReference signals a reference collision in the ledger.
	// The reference is only a uniqueness hint; the ledger's unique
	// constraint is authoritative and a collision is retryable by
	// regenerating.
	ErrDuplicateReference = errors.New("duplicate ledger reference")

	// ErrInvalidReference signals an entry submitted without a reference.
	ErrInvalidReference = errors.New("ledger reference is required")

	// Idempotency errors
	ErrDuplicateInFlight     = errors.New("request with this idempotency key is already in flight")
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be 1-255 bytes")

	// ErrTransientStore covers lock timeouts, deadlock aborts and
	// connectivity loss. The whole operation is safe to retry.
	ErrTransientStore = errors.New("transient store failure")
)
