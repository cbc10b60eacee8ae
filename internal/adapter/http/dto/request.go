package dto

import (
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/usecase"
)

// DepositRequest represents a request to credit an account with cash.
type DepositRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:    r.AccountID,
		Amount:       r.Amount,
		Counterparty: "CASH",
		Description:  r.Description,
	}
}

// WithdrawalRequest represents a request to debit an account with cash.
type WithdrawalRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawalRequest) ToUseCaseInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountID:    r.AccountID,
		Amount:       r.Amount,
		Counterparty: "CASH",
		Description:  r.Description,
	}
}

// TransferRequest represents a request to move money between accounts.
// The idempotency key travels in the Idempotency-Key header, not the body.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(idempotencyKey string) usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		Amount:         r.Amount,
		Description:    r.Description,
		IdempotencyKey: idempotencyKey,
	}
}
