package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDepositRequest_ToUseCaseInput(t *testing.T) {
	req := &DepositRequest{
		AccountID:   "ACC1001",
		Amount:      decimal.RequireFromString("50.00"),
		Description: "cash in",
	}

	got := req.ToUseCaseInput()

	require.Equal(t, "ACC1001", got.AccountID)
	require.Equal(t, "CASH", got.Counterparty)
	require.Equal(t, "cash in", got.Description)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("50.00")))
}

func TestTransferRequest_ToUseCaseInput(t *testing.T) {
	req := &TransferRequest{
		FromAccountID: "ACC1001",
		ToAccountID:   "ACC1002",
		Amount:        decimal.NewFromInt(100),
		Description:   "rent",
	}

	got := req.ToUseCaseInput("txn-1")

	require.Equal(t, "ACC1001", got.FromAccountID)
	require.Equal(t, "ACC1002", got.ToAccountID)
	require.Equal(t, "txn-1", got.IdempotencyKey)
	require.Equal(t, "rent", got.Description)
}
