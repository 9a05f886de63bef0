package transferservice

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/rs/zerolog"
)

// transferOptimistic moves the amount without holding locks across the read.
//
// Each attempt loads both benefits, revalidates business state on the fresh
// records, and writes both balances conditioned on the versions captured at
// load time. A stale version discards the whole attempt; the attempt is then
// repeated with exponential backoff up to the configured cap. Exhausting the
// cap surfaces as domain.ErrTransferConflict with no partial state committed.
func (s *Service) transferOptimistic(ctx context.Context, req domain.TransferRequest) (domain.TransferRecord, error) {
	l := zerolog.Ctx(ctx)

	var record domain.TransferRecord

	err := retry.Do(
		func() error {
			return s.store.ExecTx(ctx, func(q domain.Queries) error {
				source, err := q.Get(ctx, req.SourceID)
				if err != nil {
					return err
				}

				destination, err := q.Get(ctx, req.DestinationID)
				if err != nil {
					return err
				}

				if err := validateState(source, destination, req.Amount); err != nil {
					return err
				}

				newSource, err := source.Withdraw(req.Amount)
				if err != nil {
					return err
				}

				newDestination, err := destination.Deposit(req.Amount)
				if err != nil {
					return err
				}

				if err := q.UpdateBalance(ctx, source.ID, newSource.Value, source.Version); err != nil {
					return err
				}

				if err := q.UpdateBalance(ctx, destination.ID, newDestination.Value, destination.Version); err != nil {
					return err
				}

				record = buildRecord(req, source, destination, time.Now().UTC())

				return nil
			})
		},
		retry.Context(ctx),
		retry.Attempts(s.maxAttempts),
		retry.Delay(s.baseDelay),
		retry.MaxJitter(s.baseDelay/2),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, domain.ErrVersionConflict)
		}),
		retry.OnRetry(func(n uint, err error) {
			l.Debug().Uint("attempt", n+1).Err(err).Msg("transfer attempt conflicted, retrying")
		}),
	)
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return domain.TransferRecord{}, domain.ErrTransferConflict
		}

		return domain.TransferRecord{}, err
	}

	return record, nil
}
