package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/adapter/http/dto"
	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/usecase"
	"github.com/corebank/corebank/internal/usecase/mocks"
)

func newAccountHandler(t *testing.T) (*AccountHandler, *mocks.MockAccountRepository, *mocks.MockLedgerRepository) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, ledgerRepo)

	return NewAccountHandler(accountRepo, ledgerUC), accountRepo, ledgerRepo
}

func requestWithID(method, target, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_GetBalance(t *testing.T) {
	h, accountRepo, _ := newAccountHandler(t)
	accountRepo.Seed(&domain.Account{
		ID:        "ACC1001",
		Type:      domain.AccountTypeSavings,
		Status:    domain.AccountStatusActive,
		Balance:   decimal.RequireFromString("123.45"),
		UpdatedAt: time.Now(),
	})

	rec := httptest.NewRecorder()
	h.GetBalance(rec, requestWithID(http.MethodGet, "/api/v1/accounts/ACC1001/balance", "ACC1001"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("expected balance 123.45, got %s", resp.Balance)
	}
}

func TestAccountHandler_GetBalanceNotFound(t *testing.T) {
	h, _, _ := newAccountHandler(t)

	rec := httptest.NewRecorder()
	h.GetBalance(rec, requestWithID(http.MethodGet, "/api/v1/accounts/ACC9999/balance", "ACC9999"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Reconcile(t *testing.T) {
	h, accountRepo, ledgerRepo := newAccountHandler(t)
	accountRepo.Seed(&domain.Account{
		ID:      "ACC1001",
		Type:    domain.AccountTypeSavings,
		Status:  domain.AccountStatusActive,
		Balance: decimal.NewFromInt(70),
	})

	ctx := context.Background()
	entries := []*domain.LedgerEntry{
		{AccountID: "ACC1001", Amount: decimal.NewFromInt(100), Kind: domain.EntryKindDeposit, Reference: "REF20260829-AAA001"},
		{AccountID: "ACC1001", Amount: decimal.NewFromInt(30), Kind: domain.EntryKindWithdrawal, Reference: "REF20260829-AAA002"},
	}
	for _, e := range entries {
		if _, err := ledgerRepo.AppendEntry(ctx, nil, e); err != nil {
			t.Fatalf("seed entry failed: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.Reconcile(rec, requestWithID(http.MethodGet, "/api/v1/accounts/ACC1001/reconcile", "ACC1001"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ReconcileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent {
		t.Errorf("expected consistent account, got report %+v", resp)
	}
}

func TestAccountHandler_ListEntries(t *testing.T) {
	h, accountRepo, ledgerRepo := newAccountHandler(t)
	accountRepo.Seed(&domain.Account{
		ID:     "ACC1001",
		Type:   domain.AccountTypeSavings,
		Status: domain.AccountStatusActive,
	})

	ctx := context.Background()
	for _, ref := range []string{"REF20260829-AAA001", "REF20260829-AAA002", "REF20260829-AAA003"} {
		entry := &domain.LedgerEntry{
			AccountID: "ACC1001",
			Amount:    decimal.NewFromInt(10),
			Kind:      domain.EntryKindDeposit,
			Reference: ref,
		}
		if _, err := ledgerRepo.AppendEntry(ctx, nil, entry); err != nil {
			t.Fatalf("seed entry failed: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.ListEntries(rec, requestWithID(http.MethodGet, "/api/v1/accounts/ACC1001/entries?limit=2", "ACC1001"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 entries with limit=2, got %d", len(resp))
	}
}
