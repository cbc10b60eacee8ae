package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountType_AllowsOverdraft(t *testing.T) {
	if !AccountTypeCurrent.AllowsOverdraft() {
		t.Error("CURRENT accounts must allow overdraft")
	}
	if AccountTypeSavings.AllowsOverdraft() {
		t.Error("SAVINGS accounts must not allow overdraft")
	}
	if AccountTypeSalary.AllowsOverdraft() {
		t.Error("SALARY accounts must not allow overdraft")
	}
}

func TestAccount_CanTransact(t *testing.T) {
	tests := []struct {
		name    string
		status  AccountStatus
		wantErr error
	}{
		{"active", AccountStatusActive, nil},
		{"frozen", AccountStatusFrozen, ErrAccountInactive},
		{"closed", AccountStatusClosed, ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{ID: "acc-1", Status: tt.status}
			if err := acc.CanTransact(); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name    string
		typ     AccountType
		balance string
		amount  string
		wantErr error
	}{
		{"sufficient balance", AccountTypeSavings, "100.00", "50.00", nil},
		{"exact balance", AccountTypeSavings, "50.00", "50.00", nil},
		{"overdraft blocked", AccountTypeSavings, "30.00", "50.00", ErrInsufficientBalance},
		{"overdraft blocked salary", AccountTypeSalary, "30.00", "50.00", ErrInsufficientBalance},
		{"overdraft allowed current", AccountTypeCurrent, "30.00", "50.00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{
				ID:      "acc-1",
				Type:    tt.typ,
				Status:  AccountStatusActive,
				Balance: decimal.RequireFromString(tt.balance),
			}

			err := acc.ValidateDebit(decimal.RequireFromString(tt.amount))
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.00")}

	if got := acc.ApplyDebit(decimal.RequireFromString("40.50")); !got.Equal(decimal.RequireFromString("59.50")) {
		t.Errorf("expected 59.50, got %s", got)
	}

	if got := acc.ApplyCredit(decimal.RequireFromString("40.50")); !got.Equal(decimal.RequireFromString("140.50")) {
		t.Errorf("expected 140.50, got %s", got)
	}
}
