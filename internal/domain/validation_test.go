package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCashAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"valid", "50.00", nil},
		{"at limit", "10000000", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-1.00", ErrInvalidAmount},
		{"above limit", "10000000.01", ErrAmountTooLarge},
		{"three decimals", "10.001", ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCashAmount(decimal.RequireFromString(tt.amount))
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTransferAmount(t *testing.T) {
	if err := ValidateTransferAmount(decimal.NewFromInt(1_000_000)); err != nil {
		t.Errorf("amount at transfer limit should pass, got %v", err)
	}

	if err := ValidateTransferAmount(decimal.RequireFromString("1000000.01")); err != ErrAmountTooLarge {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength)); err != nil {
		t.Errorf("description at limit should pass, got %v", err)
	}

	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)); err != ErrDescriptionTooLong {
		t.Errorf("expected ErrDescriptionTooLong, got %v", err)
	}
}

func TestValidateIdempotencyKey(t *testing.T) {
	if err := ValidateIdempotencyKey("k1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateIdempotencyKey(""); err != ErrInvalidIdempotencyKey {
		t.Errorf("expected ErrInvalidIdempotencyKey for empty key, got %v", err)
	}

	if err := ValidateIdempotencyKey(strings.Repeat("k", 256)); err != ErrInvalidIdempotencyKey {
		t.Errorf("expected ErrInvalidIdempotencyKey for oversize key, got %v", err)
	}
}
