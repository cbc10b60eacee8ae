package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository. The table is
// append-only: there is no update or delete path.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const entryColumns = `entry_id, account_id, amount, kind, counterparty, reference, description, balance_after, created_at`

// AppendEntry inserts one entry inside the enclosing transaction and
// returns it with its assigned entry_id. A reference collision surfaces
// as domain.ErrDuplicateReference.
func (r *LedgerRepository) AppendEntry(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_entries (account_id, amount, kind, counterparty, reference, description, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING entry_id
	`

	row := pgxTx.QueryRow(ctx, query,
		entry.AccountID,
		decimalToNumeric(entry.Amount),
		entry.Kind,
		entry.Counterparty,
		entry.Reference,
		entry.Description,
		decimalToNumeric(entry.BalanceAfter),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	appended := *entry
	if err := row.Scan(&appended.EntryID); err != nil {
		return nil, classifyError(err)
	}

	return &appended, nil
}

// GetByReference retrieves an entry by its unique reference.
func (r *LedgerRepository) GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE reference = $1`

	entry, err := scanEntryRow(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, classifyError(err)
	}

	return entry, nil
}

// GetByTransferRef returns both legs of a transfer, if they exist.
func (r *LedgerRepository) GetByTransferRef(ctx context.Context, transferRef string) ([]*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE reference = $1 OR reference = $2 ORDER BY entry_id`

	rows, err := r.pool.Query(ctx, query,
		transferRef+domain.TransferSuffixOut,
		transferRef+domain.TransferSuffixIn,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListByAccount lists entries for an account, newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1 ORDER BY entry_id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// SumByAccount returns the signed sum of all entries for an account.
func (r *LedgerRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind IN ('DEPOSIT', 'TRANSFER_IN') THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, classifyError(err)
	}

	return numericToDecimal(sum), nil
}

// StatsByAccount aggregates entry count and gross totals in and out.
func (r *LedgerRepository) StatsByAccount(ctx context.Context, accountID string) (*domain.AccountStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount) FILTER (WHERE kind IN ('DEPOSIT', 'TRANSFER_IN')), 0),
		       COALESCE(SUM(amount) FILTER (WHERE kind IN ('WITHDRAWAL', 'TRANSFER_OUT')), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`

	var (
		stats    domain.AccountStats
		totalIn  pgtype.Numeric
		totalOut pgtype.Numeric
	)

	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&stats.EntryCount, &totalIn, &totalOut); err != nil {
		return nil, classifyError(err)
	}

	stats.TotalIn = numericToDecimal(totalIn)
	stats.TotalOut = numericToDecimal(totalOut)

	return &stats, nil
}

func collectEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry

	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, classifyError(err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return entries, nil
}

func scanEntryRow(row rowScanner) (*domain.LedgerEntry, error) {
	var (
		entry        domain.LedgerEntry
		amount       pgtype.Numeric
		balanceAfter pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.EntryID,
		&entry.AccountID,
		&amount,
		&entry.Kind,
		&entry.Counterparty,
		&entry.Reference,
		&entry.Description,
		&balanceAfter,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.BalanceAfter = numericToDecimal(balanceAfter)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
