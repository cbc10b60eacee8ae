package domain

import "github.com/shopspring/decimal"

// Transfer leg reference suffixes. Both legs share one transfer
// reference; the suffix makes each ledger reference unique.
const (
	TransferSuffixOut = "-OUT"
	TransferSuffixIn  = "-IN"
)

// TransferResult is the structured outcome of a completed transfer. It
// is returned to the caller and, when an idempotency key was supplied,
// stored verbatim for replay.
type TransferResult struct {
	Reference   string          `json:"reference"`
	DebitEntry  *LedgerEntry    `json:"debit_entry"`
	CreditEntry *LedgerEntry    `json:"credit_entry"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
}
