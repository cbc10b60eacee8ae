package usecase

import (
	"context"

	"github.com/corebank/corebank/internal/domain"
)

// LedgerUseCase serves ledger reads and balance reconciliation.
type LedgerUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetEntry retrieves a ledger entry by its reference.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	return uc.ledgerRepo.GetByReference(ctx, reference)
}

// ListEntriesByAccountInput represents input for listing entries.
type ListEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntriesByAccount lists ledger entries for an account.
func (uc *LedgerUseCase) ListEntriesByAccount(ctx context.Context, input ListEntriesByAccountInput) ([]*domain.LedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}
	if input.Limit > maxListLimit {
		input.Limit = maxListLimit
	}

	return uc.ledgerRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

// AccountSummary returns the balance snapshot plus ledger aggregates.
func (uc *LedgerUseCase) AccountSummary(ctx context.Context, accountID string) (*domain.AccountSummary, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.ledgerRepo.StatsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &domain.AccountSummary{Account: account, Stats: stats}, nil
}

// Reconcile checks that the account balance equals the signed sum of
// its ledger entries.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, accountID string) (*domain.ReconcileReport, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.ledgerRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &domain.ReconcileReport{
		AccountID:  accountID,
		Balance:    account.Balance,
		LedgerSum:  sum,
		Consistent: account.Balance.Equal(sum),
	}, nil
}
