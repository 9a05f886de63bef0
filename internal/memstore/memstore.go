// Package memstore provides an in-memory implementation of the benefit store
// contract. It reproduces the locking and versioning semantics the transfer
// engine relies on (blocking exclusive row locks, version compare-and-swap,
// all-or-nothing commits) so the engine can be exercised without a database.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// Store holds benefit records guarded by per-row exclusive locks.
type Store struct {
	mu   sync.Mutex
	rows map[int64]*row
	seq  int64
}

type row struct {
	mu sync.Mutex
	b  domain.Benefit
}

// New returns an empty store.
func New() *Store {
	return &Store{rows: map[int64]*row{}}
}

// Create assigns an id and initial version to the benefit and stores it.
func (s *Store) Create(name string, value decimal.Decimal, active bool) domain.Benefit {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++

	now := time.Now().UTC()
	b := domain.Benefit{
		ID:        s.seq,
		Name:      name,
		Value:     value,
		Active:    active,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.rows[b.ID] = &row{b: b}

	return b
}

// Benefit returns the committed state of the benefit with the given id.
func (s *Store) Benefit(id int64) (domain.Benefit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return domain.Benefit{}, false
	}

	return r.b, true
}

// ExecTx executes fn as a single unit of work. Writes staged by fn become
// visible only if fn returns nil; every row lock fn took is released on exit.
func (s *Store) ExecTx(ctx context.Context, fn func(q domain.Queries) error) error {
	t := &txn{
		s:      s,
		locked: map[int64]*row{},
		staged: map[int64]domain.Benefit{},
	}

	if err := fn(t); err != nil {
		t.release()
		return err
	}

	t.commit()

	return nil
}

type txn struct {
	s      *Store
	locked map[int64]*row
	staged map[int64]domain.Benefit
}

func (t *txn) lookup(id int64) (*row, bool) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	r, ok := t.s.rows[id]

	return r, ok
}

// Get returns the committed benefit without locking it. Writes staged by this
// transaction are visible to it.
func (t *txn) Get(ctx context.Context, id int64) (domain.Benefit, error) {
	if b, ok := t.staged[id]; ok {
		return b, nil
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	r, ok := t.s.rows[id]
	if !ok {
		return domain.Benefit{}, &domain.NotFoundError{ID: id}
	}

	return r.b, nil
}

// GetForUpdate locks the row exclusively, blocking until a competing
// transaction releases it, and returns the committed benefit.
func (t *txn) GetForUpdate(ctx context.Context, id int64) (domain.Benefit, error) {
	r, ok := t.lookup(id)
	if !ok {
		return domain.Benefit{}, &domain.NotFoundError{ID: id}
	}

	if _, held := t.locked[id]; !held {
		r.mu.Lock()
		t.locked[id] = r
	}

	if b, ok := t.staged[id]; ok {
		return b, nil
	}

	return r.b, nil
}

// UpdateBalance stages a balance write conditioned on the committed version.
// A row locked by a competing transaction is reported as a conflict rather
// than waited on, matching a conditional write losing the race.
func (t *txn) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, expectedVersion int64) error {
	r, ok := t.lookup(id)
	if !ok {
		return &domain.NotFoundError{ID: id}
	}

	if _, held := t.locked[id]; !held {
		if !r.mu.TryLock() {
			return domain.ErrVersionConflict
		}

		t.locked[id] = r
	}

	if r.b.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	if balance.IsNegative() {
		return domain.ErrNegativeBalance
	}

	staged := r.b
	staged.Value = balance
	staged.Version = expectedVersion + 1
	staged.UpdatedAt = time.Now().UTC()

	t.staged[id] = staged

	return nil
}

func (t *txn) commit() {
	t.s.mu.Lock()
	for id, b := range t.staged {
		t.locked[id].b = b
	}
	t.s.mu.Unlock()

	t.release()
}

func (t *txn) release() {
	for _, r := range t.locked {
		r.mu.Unlock()
	}

	t.locked = map[int64]*row{}
	t.staged = map[int64]domain.Benefit{}
}
