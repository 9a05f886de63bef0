package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransfer indicates a malformed transfer request.
	ErrInvalidTransfer = errors.New("invalid transfer request")
	// ErrInsufficientBalance indicates that the source balance does not cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrVersionConflict indicates that a conditional write observed a stale version.
	ErrVersionConflict = errors.New("version conflict")
	// ErrTransferConflict indicates that optimistic retries are exhausted.
	// The request can be safely re-submitted: no partial state was committed.
	ErrTransferConflict = errors.New("transfer failed due to concurrent modification")
)

// TransferRequest is the input data for a transfer between two benefits.
// It is never persisted.
type TransferRequest struct {
	SourceID      int64           `json:"source_id"`
	DestinationID int64           `json:"destination_id"`
	Amount        decimal.Decimal `json:"amount"` // must be positive, at most 2 decimal places
}

// TransferRecord is the immutable audit snapshot of a completed transfer.
type TransferRecord struct {
	SourceID                 int64           `json:"source_id"`
	DestinationID            int64           `json:"destination_id"`
	Amount                   decimal.Decimal `json:"amount"`
	SourceBalanceBefore      decimal.Decimal `json:"source_balance_before"`
	SourceBalanceAfter       decimal.Decimal `json:"source_balance_after"`
	DestinationBalanceBefore decimal.Decimal `json:"destination_balance_before"`
	DestinationBalanceAfter  decimal.Decimal `json:"destination_balance_after"`
	CompletedAt              time.Time       `json:"completed_at"`
}

// InsufficientBalanceError reports available versus requested funds.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

// Is matches the error against ErrInsufficientBalance.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
