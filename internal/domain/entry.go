package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind encodes the direction and origin of a ledger entry.
// Amounts are always positive; direction comes from the kind.
type EntryKind string

const (
	EntryKindDeposit     EntryKind = "DEPOSIT"
	EntryKindWithdrawal  EntryKind = "WITHDRAWAL"
	EntryKindTransferIn  EntryKind = "TRANSFER_IN"
	EntryKindTransferOut EntryKind = "TRANSFER_OUT"
)

// IsCredit reports whether the kind increases the account balance.
func (k EntryKind) IsCredit() bool {
	return k == EntryKindDeposit || k == EntryKindTransferIn
}

// LedgerEntry is one immutable record of value movement for one account.
// Entries are append-only; they are never updated or deleted.
type LedgerEntry struct {
	EntryID      int64
	AccountID    string
	Amount       decimal.Decimal
	Kind         EntryKind
	Counterparty string
	Reference    string
	Description  string
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}

// SignedAmount returns the amount with the sign implied by the kind.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind.IsCredit() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// Validate enforces the append invariants before an entry hits the store.
func (e *LedgerEntry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.Reference == "" {
		return ErrInvalidReference
	}
	return nil
}
