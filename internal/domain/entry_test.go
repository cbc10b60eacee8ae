package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEntryKind_IsCredit(t *testing.T) {
	credits := []EntryKind{EntryKindDeposit, EntryKindTransferIn}
	for _, k := range credits {
		if !k.IsCredit() {
			t.Errorf("%s should be a credit", k)
		}
	}

	debits := []EntryKind{EntryKindWithdrawal, EntryKindTransferOut}
	for _, k := range debits {
		if k.IsCredit() {
			t.Errorf("%s should be a debit", k)
		}
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("25.00")

	in := &LedgerEntry{Kind: EntryKindTransferIn, Amount: amount}
	if !in.SignedAmount().Equal(amount) {
		t.Errorf("expected %s, got %s", amount, in.SignedAmount())
	}

	out := &LedgerEntry{Kind: EntryKindTransferOut, Amount: amount}
	if !out.SignedAmount().Equal(amount.Neg()) {
		t.Errorf("expected %s, got %s", amount.Neg(), out.SignedAmount())
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	entry := &LedgerEntry{
		AccountID: "acc-1",
		Kind:      EntryKindDeposit,
		Amount:    decimal.RequireFromString("10.00"),
		Reference: "REF20260829-ABC123",
	}
	if err := entry.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	entry.Amount = decimal.Zero
	if err := entry.Validate(); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	entry.Amount = decimal.RequireFromString("10.00")
	entry.Reference = ""
	if err := entry.Validate(); err != ErrInvalidReference {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}
