package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/adapter/http/handler"
	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
	"github.com/corebank/corebank/internal/usecase/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockAccountRepository) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, ledgerRepo)

	transactionUC := usecase.NewTransactionUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		ledgerRepo,
		mocks.NewMockIdempotencyStore(),
		mocks.NewMockReferenceGenerator(),
		mocks.NewMockRetrier(),
		mocks.NewMockNotifier(),
		zerolog.Nop(),
		nil,
	)

	router := NewRouter(RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		AccountHandler:     handler.NewAccountHandler(accountRepo, ledgerUC),
		EntryHandler:       handler.NewEntryHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		Logger:             zerolog.Nop(),
	})
	return router, accountRepo
}

func TestRouter_HealthEndpointAvailable(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestRouter_MetricsEndpointAvailable(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestRouter_DepositRoute(t *testing.T) {
	router, accountRepo := newTestRouter(t)
	accountRepo.Seed(&domain.Account{
		ID:      "ACC1001",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.NewFromInt(100),
	})

	body := `{"account_id":"ACC1001","amount":"25.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_BalanceRoute(t *testing.T) {
	router, accountRepo := newTestRouter(t)
	accountRepo.Seed(&domain.Account{
		ID:      "ACC1001",
		Type:    domain.AccountTypeCurrent,
		Status:  domain.AccountStatusActive,
		Balance: decimal.NewFromInt(100),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ACC1001/balance", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
