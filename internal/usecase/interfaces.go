package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
)

// AccountRepository defines data access for account balance rows.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	// Projection maintenance, driven by external account facts.
	Upsert(ctx context.Context, account *domain.Account) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	SetBalance(ctx context.Context, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// LedgerRepository defines data access for the append-only ledger.
type LedgerRepository interface {
	AppendEntry(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error)
	GetByTransferRef(ctx context.Context, transferRef string) ([]*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
	StatsByAccount(ctx context.Context, accountID string) (*domain.AccountStats, error)
}

// CustomerRepository defines data access for the customer projection.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Upsert(ctx context.Context, customer *domain.Customer) error
	UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore handles idempotency record storage with expiry.
type IdempotencyStore interface {
	// Begin atomically creates an in-flight record for key if absent.
	// Returns the record that is now current and whether this call
	// created it (unique-insert semantics).
	Begin(ctx context.Context, key, fingerprint string) (*domain.IdempotencyRecord, bool, error)
	// Bind attaches the generated transfer reference to an in-flight
	// record so a crash between commit and Complete can be reconciled
	// against the ledger.
	Bind(ctx context.Context, key, reference string) error
	// Complete stores the final result; later lookups replay it.
	Complete(ctx context.Context, key string, result *domain.TransferResult) error
	// Release removes the record so the key can be retried.
	Release(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	// ListInFlight returns records with no result, for startup recovery.
	ListInFlight(ctx context.Context) ([]*domain.IdempotencyRecord, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// ReferenceGenerator produces human-auditable transaction references.
type ReferenceGenerator interface {
	Generate() string
}

// Notifier publishes transaction-completed facts. Best effort: the
// engine logs failures and never surfaces them to the financial caller.
type Notifier interface {
	TransactionCompleted(ctx context.Context, event *domain.TransactionEvent) error
}

// Retrier re-runs an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
