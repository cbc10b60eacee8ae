package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
	"github.com/corebank/corebank/internal/usecase/mocks"
)

func seedLedger(t *testing.T, ledger *mocks.MockLedgerRepository, entries ...*domain.LedgerEntry) {
	t.Helper()
	for _, e := range entries {
		if _, err := ledger.AppendEntry(context.Background(), &mocks.MockTransaction{}, e); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
}

func TestLedgerUseCase_AccountSummary(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	ledger := mocks.NewMockLedgerRepository()
	uc := usecase.NewLedgerUseCase(accounts, ledger)

	accounts.Seed(&domain.Account{
		ID:      "acc-1",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.RequireFromString("70.00"),
	})

	seedLedger(t, ledger,
		&domain.LedgerEntry{AccountID: "acc-1", Kind: domain.EntryKindDeposit, Amount: decimal.RequireFromString("100.00"), Reference: "REF20260829-AAA001", BalanceAfter: decimal.RequireFromString("100.00")},
		&domain.LedgerEntry{AccountID: "acc-1", Kind: domain.EntryKindWithdrawal, Amount: decimal.RequireFromString("30.00"), Reference: "REF20260829-AAA002", BalanceAfter: decimal.RequireFromString("70.00")},
	)

	summary, err := uc.AccountSummary(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Stats.EntryCount != 2 {
		t.Errorf("expected 2 entries, got %d", summary.Stats.EntryCount)
	}
	if !summary.Stats.TotalIn.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected total in 100.00, got %s", summary.Stats.TotalIn)
	}
	if !summary.Stats.TotalOut.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("expected total out 30.00, got %s", summary.Stats.TotalOut)
	}
}

func TestLedgerUseCase_Reconcile(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	ledger := mocks.NewMockLedgerRepository()
	uc := usecase.NewLedgerUseCase(accounts, ledger)

	accounts.Seed(&domain.Account{
		ID:      "acc-1",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.RequireFromString("70.00"),
	})

	seedLedger(t, ledger,
		&domain.LedgerEntry{AccountID: "acc-1", Kind: domain.EntryKindDeposit, Amount: decimal.RequireFromString("100.00"), Reference: "REF20260829-BBB001", BalanceAfter: decimal.RequireFromString("100.00")},
		&domain.LedgerEntry{AccountID: "acc-1", Kind: domain.EntryKindWithdrawal, Amount: decimal.RequireFromString("30.00"), Reference: "REF20260829-BBB002", BalanceAfter: decimal.RequireFromString("70.00")},
	)

	report, err := uc.Reconcile(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Consistent {
		t.Errorf("expected consistent report, got balance=%s sum=%s", report.Balance, report.LedgerSum)
	}

	// Drift between balance and ledger must be reported.
	accounts.Seed(&domain.Account{
		ID:      "acc-1",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.RequireFromString("99.00"),
	})

	report, err = uc.Reconcile(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Consistent {
		t.Error("expected inconsistent report")
	}
}

func TestLedgerUseCase_ListEntriesByAccount_Limits(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()
	uc := usecase.NewLedgerUseCase(mocks.NewMockAccountRepository(), ledger)

	if _, err := uc.ListEntriesByAccount(context.Background(), usecase.ListEntriesByAccountInput{AccountID: "acc-1", Limit: -5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.ListEntriesByAccount(context.Background(), usecase.ListEntriesByAccountInput{AccountID: "acc-1", Limit: 5000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
