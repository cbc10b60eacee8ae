package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corebank/corebank/internal/domain"
)

// PostgreSQL error codes this service reacts to.
const (
	pgErrUniqueViolation      = "23505"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
)

// classifyError maps driver errors onto the domain taxonomy. Unique
// violations on the ledger reference index become retryable duplicate
// references; deadlock and serialization aborts become transient
// failures the caller may retry whole.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			if pgErr.ConstraintName == "ledger_entries_reference_key" {
				return domain.ErrDuplicateReference
			}
			return err
		case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable:
			return fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
		}
	}

	return err
}
