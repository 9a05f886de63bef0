// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBenefitNotFound indicates that the benefit is not found.
	ErrBenefitNotFound = errors.New("benefit not found")
	// ErrNameTaken indicates that another benefit already has the given name.
	ErrNameTaken = errors.New("benefit name already exists")
	// ErrBenefitInactive indicates that the benefit is soft-deleted.
	ErrBenefitInactive = errors.New("benefit is inactive")
	// ErrNegativeBalance indicates that a mutation would leave the balance below zero.
	ErrNegativeBalance = errors.New("balance must not be negative")
	// ErrInternal indicates an unexpected infrastructure failure.
	ErrInternal = errors.New("internal")
)

// Benefit holds an employee benefit balance.
//
// Version is advanced by the store on every successful write; no code outside
// the repository layer may assign it.
type Benefit struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Active      bool            `json:"active"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Withdraw returns a copy of the benefit with the amount debited.
// It rejects a resulting negative balance even when the caller has already
// checked funds.
func (b Benefit) Withdraw(amount decimal.Decimal) (Benefit, error) {
	newValue := b.Value.Sub(amount)
	if newValue.IsNegative() {
		return b, ErrNegativeBalance
	}

	b.Value = newValue

	return b, nil
}

// Deposit returns a copy of the benefit with the amount credited.
func (b Benefit) Deposit(amount decimal.Decimal) (Benefit, error) {
	if amount.IsNegative() {
		return b, ErrNegativeBalance
	}

	b.Value = b.Value.Add(amount)

	return b, nil
}

// NotFoundError reports which benefit id failed to resolve.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("benefit not found: %d", e.ID)
}

// Is matches the error against ErrBenefitNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrBenefitNotFound
}

// InactiveError reports which side of a transfer is inactive.
type InactiveError struct {
	Role string // "source" or "destination"
	ID   int64
}

func (e *InactiveError) Error() string {
	return fmt.Sprintf("%s benefit %d is inactive", e.Role, e.ID)
}

// Is matches the error against ErrBenefitInactive.
func (e *InactiveError) Is(target error) bool {
	return target == ErrBenefitInactive
}
