package domain

import "time"

// IdempotencyRecord tracks one client-retried request. While Result is
// nil the operation is in flight; once set, every lookup with the same
// key replays the stored result until the record expires.
type IdempotencyRecord struct {
	Key         string          `json:"key"`
	Fingerprint string          `json:"fingerprint"`
	Reference   string          `json:"reference,omitempty"`
	Result      *TransferResult `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InFlight reports whether the protected operation has not completed.
func (r *IdempotencyRecord) InFlight() bool {
	return r.Result == nil
}
