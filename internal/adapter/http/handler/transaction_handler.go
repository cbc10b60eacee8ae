package handler

import (
	"encoding/json"
	"net/http"

	"github.com/corebank/corebank/internal/adapter/http/dto"
	"github.com/corebank/corebank/internal/usecase"
)

// IdempotencyKeyHeader carries the client-chosen transfer key.
const IdempotencyKeyHeader = "Idempotency-Key"

// TransactionHandler handles deposit, withdrawal and transfer requests.
type TransactionHandler struct {
	transactionUC *usecase.TransactionUseCase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Deposit credits an account with cash.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, balance, err := h.transactionUC.Deposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionResponse{
		Entry:   dto.EntryFromDomain(entry),
		Balance: balance,
	})
}

// Withdraw debits an account with cash.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, balance, err := h.transactionUC.Withdraw(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionResponse{
		Entry:   dto.EntryFromDomain(entry),
		Balance: balance,
	})
}

// Transfer moves money between two accounts. The Idempotency-Key
// header is optional; without it a retried request is a new transfer.
// Replays of a completed key return the stored result.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	key := r.Header.Get(IdempotencyKeyHeader)

	result, err := h.transactionUC.Transfer(r.Context(), req.ToUseCaseInput(key))
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(result))
}
