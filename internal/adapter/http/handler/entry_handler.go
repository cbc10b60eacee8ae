package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/corebank/internal/adapter/http/dto"
	"github.com/corebank/corebank/internal/usecase"
)

// EntryHandler handles ledger entry lookups.
type EntryHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(ledgerUC *usecase.LedgerUseCase) *EntryHandler {
	return &EntryHandler{ledgerUC: ledgerUC}
}

// GetByReference retrieves a ledger entry by its reference.
func (h *EntryHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), reference)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
