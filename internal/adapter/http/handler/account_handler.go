package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/corebank/internal/adapter/http/dto"
	"github.com/corebank/corebank/internal/usecase"
)

// AccountHandler handles account read requests.
type AccountHandler struct {
	accountRepo usecase.AccountRepository
	ledgerUC    *usecase.LedgerUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountRepo usecase.AccountRepository, ledgerUC *usecase.LedgerUseCase) *AccountHandler {
	return &AccountHandler{
		accountRepo: accountRepo,
		ledgerUC:    ledgerUC,
	}
}

// GetBalance returns the current balance of an account.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(account))
}

// GetSummary returns the balance plus ledger aggregates of an account.
func (h *AccountHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	summary, err := h.ledgerUC.AccountSummary(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// ListEntries returns the ledger entries of an account, newest first.
func (h *AccountHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.ListEntriesByAccount(r.Context(), usecase.ListEntriesByAccountInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Reconcile compares the account balance against the ledger sum.
func (h *AccountHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	report, err := h.ledgerUC.Reconcile(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconcileFromDomain(report))
}
