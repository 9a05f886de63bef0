// Package transferservice manages business logic layer of transfers.
//
// The transfer engine moves value atomically between two benefit balances
// under concurrent access. Two interchangeable concurrency strategies are
// supported: pessimistic ordered row locking and optimistic versioned retry.
package transferservice

import (
	"context"
	"time"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/go-ald/benefit-bank/pkg/configpkg"
	"github.com/rs/zerolog"
)

// Service facilitates transfer service layer logic.
type Service struct {
	store       domain.Store
	strategy    string
	maxAttempts uint
	baseDelay   time.Duration
}

// New returns transfer service struct to manage transfer bussines logic.
func New(store domain.Store, config configpkg.Config) *Service {
	s := &Service{
		store:       store,
		strategy:    config.TransferStrategy,
		maxAttempts: config.TransferMaxAttempts,
		baseDelay:   config.TransferRetryBaseDelay,
	}

	if s.strategy == "" {
		s.strategy = configpkg.StrategyPessimistic
	}

	if s.maxAttempts == 0 {
		s.maxAttempts = 3
	}

	if s.baseDelay == 0 {
		s.baseDelay = 100 * time.Millisecond
	}

	return s
}

// Transfer validates the request and then moves the amount from the source
// benefit to the destination benefit using the configured strategy.
func (s *Service) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferRecord, error) {
	l := zerolog.Ctx(ctx)

	if err := ValidateRequest(req); err != nil {
		l.Info().Err(err).Send()
		return domain.TransferRecord{}, err
	}

	l.Info().
		Int64("source_id", req.SourceID).
		Int64("destination_id", req.DestinationID).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("starting transfer")

	var (
		record domain.TransferRecord
		err    error
	)

	if s.strategy == configpkg.StrategyOptimistic {
		record, err = s.transferOptimistic(ctx, req)
	} else {
		record, err = s.transferPessimistic(ctx, req)
	}

	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferRecord{}, err
	}

	l.Info().
		Str("source_balance", record.SourceBalanceAfter.StringFixed(2)).
		Str("destination_balance", record.DestinationBalanceAfter.StringFixed(2)).
		Msg("transfer completed")

	return record, nil
}
