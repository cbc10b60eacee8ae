package domain

import "github.com/shopspring/decimal"

// AccountStats aggregates the ledger for one account.
type AccountStats struct {
	EntryCount int64
	TotalIn    decimal.Decimal
	TotalOut   decimal.Decimal
}

// AccountSummary is the balance snapshot plus ledger aggregates.
type AccountSummary struct {
	Account *Account
	Stats   *AccountStats
}

// ReconcileReport compares an account balance against the signed sum of
// its ledger entries. The two must always agree.
type ReconcileReport struct {
	AccountID  string
	Balance    decimal.Decimal
	LedgerSum  decimal.Decimal
	Consistent bool
}
