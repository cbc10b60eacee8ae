package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/corebank/corebank/internal/domain"
)

// ProjectionUseCase applies externally published account and customer
// facts to the local read caches. Every apply is idempotent: duplicate
// delivery of the same fact leaves the projection unchanged.
type ProjectionUseCase struct {
	accountRepo  AccountRepository
	customerRepo CustomerRepository
}

// NewProjectionUseCase creates a new ProjectionUseCase.
func NewProjectionUseCase(accountRepo AccountRepository, customerRepo CustomerRepository) *ProjectionUseCase {
	return &ProjectionUseCase{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

// ApplyAccountEvent applies one account.* fact.
func (uc *ProjectionUseCase) ApplyAccountEvent(ctx context.Context, eventType string, event *domain.AccountEvent) error {
	if event.AccountID == "" {
		return fmt.Errorf("account event missing account_id")
	}

	updatedAt := event.OccurredAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	switch eventType {
	case domain.EventTypeAccountCreated, domain.EventTypeAccountUpdated:
		account := &domain.Account{
			ID:         event.AccountID,
			CustomerID: event.CustomerID,
			Type:       event.Type,
			Status:     event.Status,
			UpdatedAt:  updatedAt,
		}
		if event.Balance != nil {
			account.Balance = *event.Balance
		}
		return uc.accountRepo.Upsert(ctx, account)

	case domain.EventTypeAccountStatusChanged:
		return uc.accountRepo.UpdateStatus(ctx, event.AccountID, event.Status, updatedAt)

	case domain.EventTypeAccountBalanceUpdated:
		if event.Balance == nil {
			return fmt.Errorf("balance_updated event missing balance")
		}
		return uc.accountRepo.SetBalance(ctx, event.AccountID, *event.Balance, updatedAt)

	default:
		return fmt.Errorf("unknown account event type %q", eventType)
	}
}

// ApplyCustomerEvent applies one customer.* fact.
func (uc *ProjectionUseCase) ApplyCustomerEvent(ctx context.Context, eventType string, event *domain.CustomerEvent) error {
	if event.CustomerID == "" {
		return fmt.Errorf("customer event missing customer_id")
	}

	updatedAt := event.OccurredAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	switch eventType {
	case domain.EventTypeCustomerCreated, domain.EventTypeCustomerUpdated:
		return uc.customerRepo.Upsert(ctx, &domain.Customer{
			ID:        event.CustomerID,
			Name:      event.Name,
			Email:     event.Email,
			Status:    event.Status,
			UpdatedAt: updatedAt,
		})

	case domain.EventTypeCustomerStatusChanged:
		return uc.customerRepo.UpdateStatus(ctx, event.CustomerID, event.Status, updatedAt)

	case domain.EventTypeCustomerDeleted:
		return uc.customerRepo.Delete(ctx, event.CustomerID)

	default:
		return fmt.Errorf("unknown customer event type %q", eventType)
	}
}
