// Package benefitrepo manages repository layer of benefits.
package benefitrepo

import (
	"context"
	"database/sql"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/go-ald/benefit-bank/pkg/dbpkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates benefit repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns benefit RepoPGS scoped to an already running transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns benefit RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const benefitColumns = `id, name, description, value, active, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBenefit(row rowScanner) (domain.Benefit, error) {
	var (
		b           domain.Benefit
		description sql.NullString
		value       string
	)

	err := row.Scan(
		&b.ID,
		&b.Name,
		&description,
		&value,
		&b.Active,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}

	b.Description = description.String

	b.Value, err = decimal.NewFromString(value)
	if err != nil {
		return b, err
	}

	return b, nil
}

const createQuery = `
INSERT INTO
    benefits (name, description, value, active)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + benefitColumns

// Create creates the benefit and then returns it.
func (r *RepoPGS) Create(ctx context.Context, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, name, newNullString(description), value.StringFixed(2), active)

	b, err := scanBenefit(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %v, ...)", name)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "benefits_name_key":
				return b, domain.ErrNameTaken
			case "benefits_value_check":
				return b, domain.ErrNegativeBalance
			}
		}

		return b, domain.ErrInternal
	}

	return b, nil
}

const getQuery = `
SELECT ` + benefitColumns + `
FROM benefits
WHERE id = $1
`

// Get returns the benefit with the given id without locking it.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Benefit, error) {
	l := zerolog.Ctx(ctx)

	b, err := scanBenefit(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return b, &domain.NotFoundError{ID: id}
		}

		l.Error().Err(err).Send()

		return b, domain.ErrInternal
	}

	return b, nil
}

const getForUpdateQuery = `
SELECT ` + benefitColumns + `
FROM benefits
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the benefit with the given id under an exclusive row
// lock held until the end of the surrounding transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Benefit, error) {
	l := zerolog.Ctx(ctx)

	b, err := scanBenefit(r.db.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return b, &domain.NotFoundError{ID: id}
		}

		l.Error().Err(err).Send()

		return b, domain.ErrInternal
	}

	return b, nil
}

const listQuery = `
SELECT ` + benefitColumns + `
FROM benefits
ORDER BY id
`

// List returns all benefits, active and inactive.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Benefit, error) {
	return r.list(ctx, listQuery)
}

const listActiveQuery = `
SELECT ` + benefitColumns + `
FROM benefits
WHERE active = true
ORDER BY name
`

// ListActive returns all active benefits ordered by name.
func (r *RepoPGS) ListActive(ctx context.Context) ([]domain.Benefit, error) {
	return r.list(ctx, listActiveQuery)
}

func (r *RepoPGS) list(ctx context.Context, query string) ([]domain.Benefit, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, domain.ErrInternal
	}
	defer rows.Close()

	items := []domain.Benefit{}

	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, domain.ErrInternal
		}

		items = append(items, b)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, domain.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE benefits
SET name = $1, description = $2, value = $3, active = $4,
    version = version + 1, updated_at = now()
WHERE id = $5
RETURNING ` + benefitColumns

// Update overwrites the benefit attributes and returns the updated benefit.
func (r *RepoPGS) Update(ctx context.Context, id int64, name, description string, value decimal.Decimal, active bool) (domain.Benefit, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, name, newNullString(description), value.StringFixed(2), active, id)

	b, err := scanBenefit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, &domain.NotFoundError{ID: id}
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "benefits_name_key":
				return b, domain.ErrNameTaken
			case "benefits_value_check":
				return b, domain.ErrNegativeBalance
			}
		}

		return b, domain.ErrInternal
	}

	return b, nil
}

const softDeleteQuery = `
UPDATE benefits
SET active = false, version = version + 1, updated_at = now()
WHERE id = $1
RETURNING id
`

// SoftDelete marks the benefit inactive. The record is never physically removed.
func (r *RepoPGS) SoftDelete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	var deleted int64
	if err := r.db.QueryRowContext(ctx, softDeleteQuery, id).Scan(&deleted); err != nil {
		if err == sql.ErrNoRows {
			return &domain.NotFoundError{ID: id}
		}

		l.Error().Err(err).Send()

		return domain.ErrInternal
	}

	return nil
}

const updateBalanceQuery = `
UPDATE benefits
SET value = $1, version = version + 1, updated_at = now()
WHERE id = $2 AND version = $3
`

// UpdateBalance writes the balance conditioned on the stored version still
// being expectedVersion. A stale version leaves the row untouched and is
// reported as domain.ErrVersionConflict.
func (r *RepoPGS) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal, expectedVersion int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, updateBalanceQuery, balance.StringFixed(2), id, expectedVersion)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "benefits_value_check" {
				return domain.ErrNegativeBalance
			}
		}

		return domain.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.ErrInternal
	}

	if affected == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

// ExecTx executes fn inside a database transaction. It commits when fn
// returns nil and rolls back otherwise, releasing every row lock fn took.
func (r *RepoPGS) ExecTx(ctx context.Context, fn func(q domain.Queries) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.ErrInternal
	}

	if err := fn(NewTxRepoPGS(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Send()
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.ErrInternal
	}

	return nil
}

func newNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
