package transferservice

import (
	"context"
	"time"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/rs/zerolog"
)

// transferPessimistic moves the amount under exclusive row locks.
//
// Locks are always acquired in ascending id order, regardless of which side
// is the source. Any two transfers touching an overlapping pair of benefits
// therefore request their locks in the same relative order, so no cycle of
// waiters can form. Acquiring in request order instead would allow the
// classic two-party deadlock.
func (s *Service) transferPessimistic(ctx context.Context, req domain.TransferRequest) (domain.TransferRecord, error) {
	l := zerolog.Ctx(ctx)

	var record domain.TransferRecord

	err := s.store.ExecTx(ctx, func(q domain.Queries) error {
		firstID, secondID := req.SourceID, req.DestinationID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}

		l.Debug().Int64("first", firstID).Int64("second", secondID).Msg("acquiring locks in order")

		first, err := q.GetForUpdate(ctx, firstID)
		if err != nil {
			return err
		}

		second, err := q.GetForUpdate(ctx, secondID)
		if err != nil {
			return err
		}

		// Map the lock-ordered records back to their transfer roles.
		source, destination := first, second
		if req.SourceID != firstID {
			source, destination = second, first
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
	if err != nil {
		return domain.TransferRecord{}, err
	}

	return record, nil
}
