package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	handler := NewRecovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1/balance", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "internal_error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRecoveryPassesThroughNormalRequests(t *testing.T) {
	handler := NewRecovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestStatusRecorderCapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	wrapped.WriteHeader(http.StatusUnprocessableEntity)
	if _, err := wrapped.Write([]byte(`{"error":"insufficient_balance"}`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if wrapped.statusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", wrapped.statusCode)
	}
	if wrapped.bytes != len(`{"error":"insufficient_balance"}`) {
		t.Fatalf("expected %d bytes, got %d", len(`{"error":"insufficient_balance"}`), wrapped.bytes)
	}
}

func TestLoggingMiddlewareDelegates(t *testing.T) {
	called := false
	handler := NewLoggingMiddleware(zerolog.Nop()).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !called {
		t.Fatal("wrapped handler was not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
