package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
	"github.com/corebank/corebank/internal/usecase/mocks"
)

func TestTransactionUseCase_DepositNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockGomockNotifier(ctrl)
	refGen := mocks.NewMockGomockReferenceGenerator(ctrl)

	refGen.EXPECT().Generate().Return("REF20260829-AAAAAA")
	notifier.EXPECT().
		TransactionCompleted(gomock.Any(), gomock.Cond(func(event *domain.TransactionEvent) bool {
			return event.EventType == domain.EventTypeDeposit &&
				event.Reference == "REF20260829-AAAAAA" &&
				len(event.Entries) == 1 &&
				event.EventID != ""
		})).
		Return(nil)

	accounts := mocks.NewMockAccountRepository()
	accounts.Seed(&domain.Account{
		ID:      "1",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.RequireFromString("100.00"),
	})

	uc := usecase.NewTransactionUseCase(
		mocks.NewMockTransactionManager(),
		accounts,
		mocks.NewMockLedgerRepository(),
		mocks.NewMockIdempotencyStore(),
		refGen,
		mocks.NewMockRetrier(),
		notifier,
		zerolog.Nop(),
		nil,
	)

	_, _, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID: "1",
		Amount:    decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
