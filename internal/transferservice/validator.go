package transferservice

import (
	"fmt"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateRequest checks the shape of a transfer request before any store
// access. It is pure and deterministic: the same request always yields the
// same verdict.
func ValidateRequest(req domain.TransferRequest) error {
	if req.SourceID <= 0 {
		return fmt.Errorf("%w: source benefit id is required", domain.ErrInvalidTransfer)
	}

	if req.DestinationID <= 0 {
		return fmt.Errorf("%w: destination benefit id is required", domain.ErrInvalidTransfer)
	}

	if req.SourceID == req.DestinationID {
		return fmt.Errorf("%w: source and destination must be different", domain.ErrInvalidTransfer)
	}

	if req.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidTransfer)
	}

	if !req.Amount.Equal(req.Amount.Round(2)) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", domain.ErrInvalidTransfer)
	}

	return nil
}

// validateState re-checks business state on loaded records. Both strategies
// run it after acquiring the accounts so the decision is always made on
// current data.
func validateState(source, destination domain.Benefit, amount decimal.Decimal) error {
	if !source.Active {
		return &domain.InactiveError{Role: "source", ID: source.ID}
	}

	if !destination.Active {
		return &domain.InactiveError{Role: "destination", ID: destination.ID}
	}

	if source.Value.LessThan(amount) {
		return &domain.InsufficientBalanceError{Available: source.Value, Requested: amount}
	}

	return nil
}
