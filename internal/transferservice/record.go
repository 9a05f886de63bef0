package transferservice

import (
	"time"

	"github.com/go-ald/benefit-bank/internal/domain"
)

// buildRecord assembles the immutable audit snapshot of a completed transfer
// from the pre-transfer records and the request. Pure assembly, no I/O.
func buildRecord(req domain.TransferRequest, sourceBefore, destinationBefore domain.Benefit, completedAt time.Time) domain.TransferRecord {
	return domain.TransferRecord{
		SourceID:                 req.SourceID,
		DestinationID:            req.DestinationID,
		Amount:                   req.Amount,
		SourceBalanceBefore:      sourceBefore.Value,
		SourceBalanceAfter:       sourceBefore.Value.Sub(req.Amount),
		DestinationBalanceBefore: destinationBefore.Value,
		DestinationBalanceAfter:  destinationBefore.Value.Add(req.Amount),
		CompletedAt:              completedAt,
	}
}
