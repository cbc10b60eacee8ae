package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	EntryID      int64           `json:"entry_id"`
	AccountID    string          `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         string          `json:"kind"`
	Counterparty string          `json:"counterparty,omitempty"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description,omitempty"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		Amount:       e.Amount,
		Kind:         string(e.Kind),
		Counterparty: e.Counterparty,
		Reference:    e.Reference,
		Description:  e.Description,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionResponse is the result of a deposit or withdrawal.
type TransactionResponse struct {
	Entry   *EntryResponse  `json:"entry"`
	Balance decimal.Decimal `json:"balance"`
}

// TransferResponse is the result of a completed transfer.
type TransferResponse struct {
	Reference   string          `json:"reference"`
	DebitEntry  *EntryResponse  `json:"debit_entry"`
	CreditEntry *EntryResponse  `json:"credit_entry"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
}

// TransferFromDomain converts a domain transfer result to a response.
func TransferFromDomain(t *domain.TransferResult) *TransferResponse {
	resp := &TransferResponse{
		Reference:   t.Reference,
		FromBalance: t.FromBalance,
		ToBalance:   t.ToBalance,
	}
	if t.DebitEntry != nil {
		resp.DebitEntry = EntryFromDomain(t.DebitEntry)
	}
	if t.CreditEntry != nil {
		resp.CreditEntry = EntryFromDomain(t.CreditEntry)
	}
	return resp
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Status    string          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BalanceFromDomain converts a domain account to a balance response.
func BalanceFromDomain(a *domain.Account) *BalanceResponse {
	return &BalanceResponse{
		AccountID: a.ID,
		Status:    string(a.Status),
		Balance:   a.Balance,
		UpdatedAt: a.UpdatedAt,
	}
}

// SummaryResponse represents an account summary in API responses.
type SummaryResponse struct {
	AccountID  string          `json:"account_id"`
	Type       string          `json:"account_type"`
	Status     string          `json:"status"`
	Balance    decimal.Decimal `json:"balance"`
	EntryCount int64           `json:"entry_count"`
	TotalIn    decimal.Decimal `json:"total_in"`
	TotalOut   decimal.Decimal `json:"total_out"`
}

// SummaryFromDomain converts a domain account summary to a response.
func SummaryFromDomain(s *domain.AccountSummary) *SummaryResponse {
	return &SummaryResponse{
		AccountID:  s.Account.ID,
		Type:       string(s.Account.Type),
		Status:     string(s.Account.Status),
		Balance:    s.Account.Balance,
		EntryCount: s.Stats.EntryCount,
		TotalIn:    s.Stats.TotalIn,
		TotalOut:   s.Stats.TotalOut,
	}
}

// ReconcileResponse represents a reconciliation report in API responses.
type ReconcileResponse struct {
	AccountID  string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Consistent bool            `json:"consistent"`
}

// ReconcileFromDomain converts a domain reconcile report to a response.
func ReconcileFromDomain(r *domain.ReconcileReport) *ReconcileResponse {
	return &ReconcileResponse{
		AccountID:  r.AccountID,
		Balance:    r.Balance,
		LedgerSum:  r.LedgerSum,
		Consistent: r.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
