package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/infrastructure/metrics"
)

// RecoveryUseCase reconciles idempotency records against the ledger on
// startup. A crash between the ledger commit and the idempotency-record
// update leaves a record in flight with a bound reference; the ledger
// decides whether that transfer actually happened.
type RecoveryUseCase struct {
	idempotency IdempotencyStore
	ledgerRepo  LedgerRepository
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewRecoveryUseCase creates a new RecoveryUseCase.
func NewRecoveryUseCase(idempotency IdempotencyStore, ledgerRepo LedgerRepository, logger zerolog.Logger, m *metrics.Metrics) *RecoveryUseCase {
	return &RecoveryUseCase{
		idempotency: idempotency,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
		metrics:     m,
	}
}

// ReconcileIdempotency resolves every in-flight record: completed from
// the ledger when both legs exist, released otherwise. Returns the
// number of records completed and released.
func (uc *RecoveryUseCase) ReconcileIdempotency(ctx context.Context) (completed, released int, err error) {
	records, err := uc.idempotency.ListInFlight(ctx)
	if err != nil {
		return 0, 0, err
	}

	if uc.metrics != nil {
		uc.metrics.IdempotencyInFlight.Set(float64(len(records)))
	}

	for _, record := range records {
		if record.Reference == "" {
			// Failed before a reference was even bound; no ledger
			// write can exist.
			if err := uc.idempotency.Release(ctx, record.Key); err != nil {
				uc.logger.Error().Err(err).Str("idempotency_key", record.Key).
					Msg("failed to release stale idempotency record")
				continue
			}
			released++
			continue
		}

		legs, err := uc.ledgerRepo.GetByTransferRef(ctx, record.Reference)
		if err != nil {
			uc.logger.Error().Err(err).Str("reference", record.Reference).
				Msg("failed to look up ledger legs for recovery")
			continue
		}

		result := resultFromLegs(record.Reference, legs)
		if result == nil {
			// The atomic unit rolled back; the key is free to retry.
			if err := uc.idempotency.Release(ctx, record.Key); err != nil {
				uc.logger.Error().Err(err).Str("idempotency_key", record.Key).
					Msg("failed to release rolled-back idempotency record")
				continue
			}
			released++
			continue
		}

		if err := uc.idempotency.Complete(ctx, record.Key, result); err != nil {
			uc.logger.Error().Err(err).Str("idempotency_key", record.Key).
				Msg("failed to complete recovered idempotency record")
			continue
		}
		completed++

		uc.logger.Info().Str("idempotency_key", record.Key).
			Str("reference", record.Reference).
			Msg("recovered committed transfer for in-flight idempotency record")
	}

	if uc.metrics != nil {
		uc.metrics.RecoveryCompleted.Add(float64(completed))
		uc.metrics.RecoveryReleased.Add(float64(released))
	}

	return completed, released, nil
}

// resultFromLegs rebuilds a TransferResult from the two ledger legs, or
// returns nil when the transfer never committed.
func resultFromLegs(reference string, legs []*domain.LedgerEntry) *domain.TransferResult {
	var debit, credit *domain.LedgerEntry

	for _, leg := range legs {
		switch leg.Kind {
		case domain.EntryKindTransferOut:
			debit = leg
		case domain.EntryKindTransferIn:
			credit = leg
		}
	}

	if debit == nil || credit == nil {
		return nil
	}

	return &domain.TransferResult{
		Reference:   reference,
		DebitEntry:  debit,
		CreditEntry: credit,
		FromBalance: debit.BalanceAfter,
		ToBalance:   credit.BalanceAfter,
	}
}
