// Package benefitservice manages business logic layer of benefits.
package benefitservice

import (
	"context"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by benefit service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package benefitservice
type Repo interface {
	Create(ctx context.Context, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error)
	Get(ctx context.Context, id int64) (domain.Benefit, error)
	List(ctx context.Context) ([]domain.Benefit, error)
	ListActive(ctx context.Context) ([]domain.Benefit, error)
	Update(ctx context.Context, id int64, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error)
	SoftDelete(ctx context.Context, id int64) error
}

// Service facilitates benefit service layer logic.
type Service struct {
	repo Repo
}

// New returns benefit service struct to manage benefit bussines logic.
func New(br Repo) *Service {
	return &Service{repo: br}
}

// Create creates and returns the benefit.
func (s *Service) Create(ctx context.Context, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error) {
	if value.IsNegative() {
		return domain.Benefit{}, domain.ErrNegativeBalance
	}

	return s.repo.Create(ctx, name, description, value, active)
}

// Get returns the benefit with the given id, active or not.
func (s *Service) Get(ctx context.Context, id int64) (domain.Benefit, error) {
	return s.repo.Get(ctx, id)
}

// List returns all benefits.
func (s *Service) List(ctx context.Context) ([]domain.Benefit, error) {
	return s.repo.List(ctx)
}

// ListActive returns all active benefits.
func (s *Service) ListActive(ctx context.Context) ([]domain.Benefit, error) {
	return s.repo.ListActive(ctx)
}

// Update overwrites the benefit attributes and returns the updated benefit.
func (s *Service) Update(ctx context.Context, id int64, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error) {
	if value.IsNegative() {
		return domain.Benefit{}, domain.ErrNegativeBalance
	}

	return s.repo.Update(ctx, id, name, description, value, active)
}

// Delete soft deletes the benefit: the record stays readable but rejects
// transfers from then on.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
