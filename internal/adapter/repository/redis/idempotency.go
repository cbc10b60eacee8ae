package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/corebank/corebank/internal/domain"
)

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
// Records live under a common prefix and expire after ttl; updates
// after creation keep the remaining expiry so a retried key never
// outlives its original window.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
		ttl:    ttl,
	}
}

// Begin atomically creates an in-flight record for key if absent.
// SetNX is the create-if-absent primitive; when it loses the race the
// record that won is fetched and returned with created=false.
func (s *IdempotencyStore) Begin(ctx context.Context, key, fingerprint string) (*domain.IdempotencyRecord, bool, error) {
	record := &domain.IdempotencyRecord{
		Key:         key,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, false, fmt.Errorf("marshal idempotency record: %w", err)
	}

	fullKey := s.prefix + key
	set, err := s.client.SetNX(ctx, fullKey, payload, s.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("setnx idempotency record: %w", err)
	}
	if set {
		return record, true, nil
	}

	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// The winner expired or was released between SetNX and Get.
		// Treat as a fresh key and let the caller retry.
		return nil, false, domain.ErrDuplicateInFlight
	}
	return existing, false, nil
}

// Bind attaches the generated transfer reference to an in-flight record.
func (s *IdempotencyStore) Bind(ctx context.Context, key, reference string) error {
	return s.update(ctx, key, func(record *domain.IdempotencyRecord) {
		record.Reference = reference
	})
}

// Complete stores the final result; later Begin calls replay it.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, result *domain.TransferResult) error {
	return s.update(ctx, key, func(record *domain.IdempotencyRecord) {
		record.Result = result
	})
}

// Release removes the record so the key can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency record: %w", err)
	}
	return nil
}

// Get returns the record for key, or nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}

	var record domain.IdempotencyRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal idempotency record: %w", err)
	}
	return &record, nil
}

// ListInFlight returns records with no stored result, for startup recovery.
func (s *IdempotencyStore) ListInFlight(ctx context.Context) ([]*domain.IdempotencyRecord, error) {
	var records []*domain.IdempotencyRecord

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()[len(s.prefix):]
		record, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if record == nil || !record.InFlight() {
			continue
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan idempotency records: %w", err)
	}

	return records, nil
}

// update rewrites the record in place, keeping the remaining TTL.
func (s *IdempotencyStore) update(ctx context.Context, key string, mutate func(*domain.IdempotencyRecord)) error {
	record, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("idempotency record %q not found", key)
	}

	mutate(record)

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal idempotency record: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("update idempotency record: %w", err)
	}
	return nil
}
