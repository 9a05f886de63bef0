package benefitrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/go-ald/benefit-bank/pkg/configpkg"
	"github.com/go-ald/benefit-bank/pkg/dbpkg"
	"github.com/go-ald/benefit-bank/pkg/randompkg"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomBenefit(t *testing.T) domain.Benefit {
	testName := randompkg.Name()
	testDescription := randompkg.String(20)
	testValue := randompkg.MoneyAmountBetween(1_000, 10_000)

	benefit, err := testRepo.Create(context.Background(), testName, testDescription, testValue, true)
	require.NoError(t, err)
	require.NotEmpty(t, benefit)

	require.Equal(t, testName, benefit.Name)
	require.Equal(t, testDescription, benefit.Description)
	require.True(t, testValue.Equal(benefit.Value))
	require.True(t, benefit.Active)
	require.EqualValues(t, 1, benefit.Version)

	require.NotZero(t, benefit.ID)
	require.NotZero(t, benefit.CreatedAt)
	require.NotZero(t, benefit.UpdatedAt)

	return benefit
}

func TestCreate(t *testing.T) {
	createRandomBenefit(t)
}

func TestCreateConstraintViolations(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	type input struct {
		name  string
		value decimal.Decimal
	}

	testCases := []struct {
		name          string
		input         input
		checkResponse func(response domain.Benefit, err error)
	}{
		{
			name: "ErrNameTaken",
			input: input{
				testBenefit.Name,
				randompkg.MoneyAmountBetween(1_000, 10_000),
			},
			checkResponse: func(response domain.Benefit, err error) {
				require.EqualError(t, err, domain.ErrNameTaken.Error())
				require.Empty(t, response)
			},
		},
		{
			name: "ErrNegativeBalance",
			input: input{
				randompkg.Name(),
				decimal.RequireFromString("-1.00"),
			},
			checkResponse: func(response domain.Benefit, err error) {
				require.EqualError(t, err, domain.ErrNegativeBalance.Error())
				require.Empty(t, response)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			response, err := testRepo.Create(context.Background(), tc.input.name, "", tc.input.value, true)

			tc.checkResponse(response, err)
		})
	}
}

func TestGet(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	benefit2, err := testRepo.Get(context.Background(), testBenefit.ID)
	require.NoError(t, err)
	require.NotEmpty(t, benefit2)

	require.Equal(t, testBenefit.ID, benefit2.ID)
	require.Equal(t, testBenefit.Name, benefit2.Name)
	require.Equal(t, testBenefit.Description, benefit2.Description)
	require.True(t, testBenefit.Value.Equal(benefit2.Value))
	require.Equal(t, testBenefit.Version, benefit2.Version)
	require.WithinDuration(t, testBenefit.CreatedAt, benefit2.CreatedAt, time.Second)
}

func TestGetNotFound(t *testing.T) {
	benefit, err := testRepo.Get(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrBenefitNotFound)
	require.Empty(t, benefit)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.EqualValues(t, -1, notFound.ID)
}

func TestList(t *testing.T) {
	for i := 0; i < 5; i++ {
		createRandomBenefit(t)
	}

	benefits, err := testRepo.List(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(benefits), 5)

	for _, b := range benefits {
		require.NotEmpty(t, b)
	}
}

func TestListActive(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	require.NoError(t, testRepo.SoftDelete(context.Background(), testBenefit.ID))

	benefits, err := testRepo.ListActive(context.Background())
	require.NoError(t, err)

	for _, b := range benefits {
		require.True(t, b.Active)
		require.NotEqual(t, testBenefit.ID, b.ID)
	}
}

func TestUpdate(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	newName := randompkg.Name()
	newDescription := randompkg.String(30)
	newValue := randompkg.MoneyAmountBetween(1_000, 10_000)

	updated, err := testRepo.Update(context.Background(), testBenefit.ID, newName, newDescription, newValue, false)
	require.NoError(t, err)

	require.Equal(t, testBenefit.ID, updated.ID)
	require.Equal(t, newName, updated.Name)
	require.Equal(t, newDescription, updated.Description)
	require.True(t, newValue.Equal(updated.Value))
	require.False(t, updated.Active)
	require.Equal(t, testBenefit.Version+1, updated.Version)
}

func TestUpdateNotFound(t *testing.T) {
	_, err := testRepo.Update(context.Background(), -1, randompkg.Name(), "", decimal.Zero, true)
	require.ErrorIs(t, err, domain.ErrBenefitNotFound)
}

func TestSoftDelete(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	require.NoError(t, testRepo.SoftDelete(context.Background(), testBenefit.ID))

	deleted, err := testRepo.Get(context.Background(), testBenefit.ID)
	require.NoError(t, err)
	require.False(t, deleted.Active)
	require.Equal(t, testBenefit.Version+1, deleted.Version)
}

func TestSoftDeleteNotFound(t *testing.T) {
	err := testRepo.SoftDelete(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrBenefitNotFound)
}

func TestUpdateBalance(t *testing.T) {
	testBenefit := createRandomBenefit(t)
	newBalance := testBenefit.Value.Add(decimal.RequireFromString("10.00"))

	err := testRepo.UpdateBalance(context.Background(), testBenefit.ID, newBalance, testBenefit.Version)
	require.NoError(t, err)

	got, err := testRepo.Get(context.Background(), testBenefit.ID)
	require.NoError(t, err)
	require.True(t, newBalance.Equal(got.Value))
	require.Equal(t, testBenefit.Version+1, got.Version)
}

func TestUpdateBalanceStaleVersion(t *testing.T) {
	testBenefit := createRandomBenefit(t)

	err := testRepo.UpdateBalance(context.Background(), testBenefit.ID, testBenefit.Value, testBenefit.Version+100)
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	got, err := testRepo.Get(context.Background(), testBenefit.ID)
	require.NoError(t, err)
	require.True(t, testBenefit.Value.Equal(got.Value))
	require.Equal(t, testBenefit.Version, got.Version)
}

func TestTxScopedRepo(t *testing.T) {
	config, err := configpkg.Load("../../configs")
	require.NoError(t, err)

	// The transaction is rolled back on cleanup so nothing leaks into the
	// shared database.
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	txRepo := NewTxRepoPGS(tx)

	created, err := txRepo.Create(context.Background(), randompkg.Name(), "", decimal.RequireFromString("100.00"), true)
	require.NoError(t, err)

	locked, err := txRepo.GetForUpdate(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, created.Value.Equal(locked.Value))

	err = txRepo.UpdateBalance(context.Background(), locked.ID, decimal.RequireFromString("70.00"), locked.Version)
	require.NoError(t, err)

	got, err := txRepo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("70.00").Equal(got.Value))
	require.Equal(t, locked.Version+1, got.Version)
}

func TestExecTx(t *testing.T) {
	source := createRandomBenefit(t)
	destination := createRandomBenefit(t)
	amount := decimal.RequireFromString("25.00")

	err := testRepo.ExecTx(context.Background(), func(q domain.Queries) error {
		s, err := q.GetForUpdate(context.Background(), source.ID)
		if err != nil {
			return err
		}

		d, err := q.GetForUpdate(context.Background(), destination.ID)
		if err != nil {
			return err
		}

		if err := q.UpdateBalance(context.Background(), s.ID, s.Value.Sub(amount), s.Version); err != nil {
			return err
		}

		return q.UpdateBalance(context.Background(), d.ID, d.Value.Add(amount), d.Version)
	})
	require.NoError(t, err)

	gotSource, err := testRepo.Get(context.Background(), source.ID)
	require.NoError(t, err)
	require.True(t, source.Value.Sub(amount).Equal(gotSource.Value))

	gotDestination, err := testRepo.Get(context.Background(), destination.ID)
	require.NoError(t, err)
	require.True(t, destination.Value.Add(amount).Equal(gotDestination.Value))
}

func TestExecTxRollback(t *testing.T) {
	source := createRandomBenefit(t)

	err := testRepo.ExecTx(context.Background(), func(q domain.Queries) error {
		s, err := q.GetForUpdate(context.Background(), source.ID)
		if err != nil {
			return err
		}

		if err := q.UpdateBalance(context.Background(), s.ID, s.Value.Add(decimal.RequireFromString("10.00")), s.Version); err != nil {
			return err
		}

		return domain.ErrInternal
	})
	require.ErrorIs(t, err, domain.ErrInternal)

	got, err := testRepo.Get(context.Background(), source.ID)
	require.NoError(t, err)
	require.True(t, source.Value.Equal(got.Value))
	require.Equal(t, source.Version, got.Version)
}
