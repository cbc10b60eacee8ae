package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account and decides its overdraft policy.
type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSalary  AccountType = "SALARY"
)

// AllowsOverdraft reports whether the balance may go negative.
// Only CURRENT accounts carry an overdraft facility.
func (t AccountType) AllowsOverdraft() bool {
	return t == AccountTypeCurrent
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// Account is the balance snapshot for one account. The record itself is
// owned by an external account-management process; this service reads it
// for validation and writes Balance as a side effect of posting a ledger
// entry.
type Account struct {
	ID         string
	CustomerID string
	Type       AccountType
	Status     AccountStatus
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanTransact checks that the account may be debited or credited at all.
func (a *Account) CanTransact() error {
	if a.Status != AccountStatusActive {
		return ErrAccountInactive
	}
	return nil
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	newBalance := a.Balance.Sub(amount)
	if newBalance.IsNegative() && !a.Type.AllowsOverdraft() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
