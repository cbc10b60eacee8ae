package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/infrastructure/metrics"
)

// TransactionUseCase applies deposits, withdrawals and transfers against
// account balances, producing the ledger entries that explain them.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	idempotency IdempotencyStore
	refGen      ReferenceGenerator
	retrier     Retrier
	notifier    Notifier
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	idempotency IdempotencyStore,
	refGen ReferenceGenerator,
	retrier Retrier,
	notifier Notifier,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		idempotency: idempotency,
		refGen:      refGen,
		retrier:     retrier,
		notifier:    notifier,
		logger:      logger,
		metrics:     m,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID    string
	Amount       decimal.Decimal
	Counterparty string
	Description  string
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID    string
	Amount       decimal.Decimal
	Counterparty string
	Description  string
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey string
}

// Deposit credits an active account and appends one DEPOSIT entry.
func (uc *TransactionUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.LedgerEntry, decimal.Decimal, error) {
	if err := domain.ValidateCashAmount(input.Amount); err != nil {
		return nil, decimal.Zero, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, decimal.Zero, err
	}

	start := time.Now()
	entry, err := uc.applyCash(ctx, input.AccountID, input.Amount, domain.EntryKindDeposit, input.Counterparty, input.Description)
	if err != nil {
		uc.countError("deposit", err)
		return nil, decimal.Zero, err
	}
	uc.observe("deposit", input.Amount, start)

	uc.notify(ctx, domain.EventTypeDeposit, entry.Reference, entry)

	return entry, entry.BalanceAfter, nil
}

// Withdraw debits an active account and appends one WITHDRAWAL entry.
// The post-withdrawal balance must be non-negative unless the account
// type allows overdraft.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.LedgerEntry, decimal.Decimal, error) {
	if err := domain.ValidateCashAmount(input.Amount); err != nil {
		return nil, decimal.Zero, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, decimal.Zero, err
	}

	start := time.Now()
	entry, err := uc.applyCash(ctx, input.AccountID, input.Amount, domain.EntryKindWithdrawal, input.Counterparty, input.Description)
	if err != nil {
		uc.countError("withdrawal", err)
		return nil, decimal.Zero, err
	}
	uc.observe("withdrawal", input.Amount, start)

	uc.notify(ctx, domain.EventTypeWithdrawal, entry.Reference, entry)

	return entry, entry.BalanceAfter, nil
}

// Transfer moves amount between two accounts as one atomic unit and
// tolerates client retries through the idempotency key protocol.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}
	if err := domain.ValidateTransferAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	if key != "" {
		if err := domain.ValidateIdempotencyKey(key); err != nil {
			return nil, err
		}

		record, created, err := uc.idempotency.Begin(ctx, key, transferFingerprint(input))
		if err != nil {
			// A concurrent holder whose record expired mid-race still
			// surfaces as a duplicate, not a store failure.
			if errors.Is(err, domain.ErrDuplicateInFlight) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
		}

		if !created {
			if !record.InFlight() {
				// A completed record replays its stored result
				// verbatim; the retry payload is not re-examined.
				if uc.metrics != nil {
					uc.metrics.IdempotencyReplays.Inc()
				}
				return record.Result, nil
			}
			return nil, domain.ErrDuplicateInFlight
		}
	}

	start := time.Now()
	result, err := uc.executeTransfer(ctx, input, key)
	if err != nil {
		uc.countError("transfer", err)
		if key != "" {
			if relErr := uc.idempotency.Release(ctx, key); relErr != nil {
				uc.logger.Error().Err(relErr).Str("idempotency_key", key).
					Msg("failed to release idempotency record after failed transfer")
			}
		}
		return nil, err
	}

	if key != "" {
		if err := uc.idempotency.Complete(ctx, key, result); err != nil {
			// The transfer is already committed. The record stays
			// in flight with the reference bound; startup
			// reconciliation completes it from the ledger.
			uc.logger.Error().Err(err).Str("idempotency_key", key).
				Str("reference", result.Reference).
				Msg("failed to store transfer result for idempotency key")
		}
	}

	uc.observe("transfer", input.Amount, start)

	uc.notify(ctx, domain.EventTypeTransfer, result.Reference, result.DebitEntry, result.CreditEntry)

	return result, nil
}

// executeTransfer runs the locked dual-entry write, regenerating the
// shared reference on a collision.
func (uc *TransactionUseCase) executeTransfer(ctx context.Context, input TransferInput, key string) (*domain.TransferResult, error) {
	var result *domain.TransferResult

	var err error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		err = uc.retrier.Retry(ctx, func() error {
			r, txErr := uc.transferOnce(ctx, input, key)
			if txErr != nil {
				return txErr
			}
			result = r
			return nil
		})

		if !errors.Is(err, domain.ErrDuplicateReference) {
			break
		}
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *TransactionUseCase) transferOnce(ctx context.Context, input TransferInput, key string) (*domain.TransferResult, error) {
	ref := uc.refGen.Generate()

	if key != "" {
		if err := uc.idempotency.Bind(ctx, key, ref); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending account-id order so two opposing
	// transfers between the same pair cannot deadlock.
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	from := accountMap[input.FromAccountID]
	to := accountMap[input.ToAccountID]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := from.CanTransact(); err != nil {
		return nil, err
	}
	if err := to.CanTransact(); err != nil {
		return nil, err
	}
	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fromBalance := from.ApplyDebit(input.Amount)
	toBalance := to.ApplyCredit(input.Amount)

	debit, err := uc.ledgerRepo.AppendEntry(ctx, tx, &domain.LedgerEntry{
		AccountID:    from.ID,
		Amount:       input.Amount,
		Kind:         domain.EntryKindTransferOut,
		Counterparty: to.ID,
		Reference:    ref + domain.TransferSuffixOut,
		Description:  input.Description,
		BalanceAfter: fromBalance,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	credit, err := uc.ledgerRepo.AppendEntry(ctx, tx, &domain.LedgerEntry{
		AccountID:    to.ID,
		Amount:       input.Amount,
		Kind:         domain.EntryKindTransferIn,
		Counterparty: from.ID,
		Reference:    ref + domain.TransferSuffixIn,
		Description:  input.Description,
		BalanceAfter: toBalance,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, fromBalance, now); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, toBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferResult{
		Reference:   ref,
		DebitEntry:  debit,
		CreditEntry: credit,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

// applyCash runs a single-account credit or debit.
func (uc *TransactionUseCase) applyCash(ctx context.Context, accountID string, amount decimal.Decimal, kind domain.EntryKind, counterparty, description string) (*domain.LedgerEntry, error) {
	var entry *domain.LedgerEntry

	var err error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		err = uc.retrier.Retry(ctx, func() error {
			e, txErr := uc.applyCashOnce(ctx, accountID, amount, kind, counterparty, description)
			if txErr != nil {
				return txErr
			}
			entry = e
			return nil
		})

		if !errors.Is(err, domain.ErrDuplicateReference) {
			break
		}
	}

	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *TransactionUseCase) applyCashOnce(ctx context.Context, accountID string, amount decimal.Decimal, kind domain.EntryKind, counterparty, description string) (*domain.LedgerEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.CanTransact(); err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	if kind.IsCredit() {
		newBalance = account.ApplyCredit(amount)
	} else {
		if err := account.ValidateDebit(amount); err != nil {
			return nil, err
		}
		newBalance = account.ApplyDebit(amount)
	}

	now := time.Now().UTC()

	entry, err := uc.ledgerRepo.AppendEntry(ctx, tx, &domain.LedgerEntry{
		AccountID:    account.ID,
		Amount:       amount,
		Kind:         kind,
		Counterparty: counterparty,
		Reference:    uc.refGen.Generate(),
		Description:  description,
		BalanceAfter: newBalance,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *TransactionUseCase) notify(ctx context.Context, eventType, reference string, entries ...*domain.LedgerEntry) {
	event := &domain.TransactionEvent{
		EventID:    ulid.Make().String(),
		EventType:  eventType,
		Reference:  reference,
		Entries:    entries,
		OccurredAt: time.Now().UTC(),
	}

	if err := uc.notifier.TransactionCompleted(ctx, event); err != nil {
		// Notification is best effort and must never undo a
		// committed transaction.
		uc.logger.Error().Err(err).
			Str("event_type", eventType).
			Str("reference", reference).
			Msg("transaction notification failed")
	}
}

func (uc *TransactionUseCase) observe(kind string, amount decimal.Decimal, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionsTotal.WithLabelValues(kind).Inc()
	uc.metrics.TransactionAmount.WithLabelValues(kind).Observe(amount.InexactFloat64())
	uc.metrics.TransactionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (uc *TransactionUseCase) countError(kind string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionErrors.WithLabelValues(kind, errorLabel(err)).Inc()
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrDuplicateInFlight):
		return "duplicate_in_flight"
	case errors.Is(err, domain.ErrTransientStore):
		return "transient_store"
	default:
		return "internal"
	}
}

// transferFingerprint serializes the original request so a retry with a
// changed payload is detectable.
func transferFingerprint(input TransferInput) string {
	b, _ := json.Marshal(struct {
		From        string `json:"from"`
		To          string `json:"to"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}{input.FromAccountID, input.ToAccountID, input.Amount.String(), input.Description})

	return string(b)
}
