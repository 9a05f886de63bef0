package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Queries is the set of store primitives the transfer engine needs inside a
// single unit of work.
type Queries interface {
	// Get returns the benefit without taking any lock.
	Get(ctx context.Context, id int64) (Benefit, error)
	// GetForUpdate returns the benefit under an exclusive row lock. The lock
	// is held until the surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id int64) (Benefit, error)
	// UpdateBalance writes the balance conditioned on the stored version being
	// expectedVersion, advancing the version on success. A stale version is
	// reported as ErrVersionConflict and nothing is written.
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, expectedVersion int64) error
}

// Store runs units of work against the benefit store.
type Store interface {
	// ExecTx executes fn inside a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise; either way every lock
	// taken by fn is released.
	ExecTx(ctx context.Context, fn func(q Queries) error) error
}
