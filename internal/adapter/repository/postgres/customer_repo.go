package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/corebank/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository over the
// customer projection table.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT id, name, email, status, created_at, updated_at FROM customers WHERE id = $1`

	var (
		customer  domain.Customer
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, classifyError(err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}

// Upsert creates or refreshes a customer projection row.
func (r *CustomerRepository) Upsert(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	createdAt := customer.CreatedAt
	if createdAt.IsZero() {
		createdAt = customer.UpdatedAt
	}

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Status,
		timeToPgTimestamptz(createdAt),
		timeToPgTimestamptz(customer.UpdatedAt),
	)

	return classifyError(err)
}

// UpdateStatus applies an externally published status change.
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error {
	query := `UPDATE customers SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer projection row. Deleting an absent row is
// not an error: the fact may be delivered more than once.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)

	return classifyError(err)
}
