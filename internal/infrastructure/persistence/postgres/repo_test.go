package postgres

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
	"github.com/lendcore/loan-pricing/pkg/testutil"
)

// fakeRow copies values into Scan destinations positionally.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		if r.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestFeeRuleRepo(t *testing.T) {
	t.Run("parses percent parameters", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{values: []any{[]byte(`{"daily_max_fee": 0.4}`)}}}

		rule, err := NewFeeRuleRepo(q, "").CurrentFeeRule(context.Background())

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "0.004", rule.DailyMaxFeeRate())
		assert.Equal(t, []any{DefaultFeeRuleFeature}, q.args)
	})

	t.Run("missing setting", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

		_, err := NewFeeRuleRepo(q, "custom").CurrentFeeRule(context.Background())

		assert.ErrorIs(t, err, valueobject.ErrNotFound)
		assert.Contains(t, err.Error(), `"custom"`)
	})

	t.Run("malformed parameters", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{values: []any{[]byte(`{"daily_max_fee": -1}`)}}}

		_, err := NewFeeRuleRepo(q, "").CurrentFeeRule(context.Background())

		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})

	t.Run("query failure is not a not-found", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{err: errors.New("conn reset")}}

		_, err := NewFeeRuleRepo(q, "").CurrentFeeRule(context.Background())

		require.Error(t, err)
		assert.NotErrorIs(t, err, valueobject.ErrNotFound)
	})
}

func productRow(threshold any, rules any) fakeRow {
	return fakeRow{values: []any{
		"J1", decimal.RequireFromString("0.04"), decimal.RequireFromString("0.05"), nullDec("0.01"),
		6, 12,
		threshold, nullDec("2000000"), decimal.NullDecimal{},
		rules,
	}}
}

func TestProductCatalogRepo(t *testing.T) {
	defaultThreshold := decimal.NewFromInt(100_000)

	t.Run("maps columns and applies default threshold", func(t *testing.T) {
		q := &fakeQuerier{row: productRow(decimal.NullDecimal{}, []string{"tenor <= 9"})}

		terms, err := NewProductCatalogRepo(q, defaultThreshold).ProductTerms(context.Background(), "J1")

		require.NoError(t, err)
		assert.Equal(t, "J1", terms.Code)
		assert.Equal(t, 6, terms.MinTenor)
		assert.Equal(t, 12, terms.MaxTenor)
		testutil.AssertDecimalEqual(t, "0.01", terms.CashbackRate)
		testutil.AssertDecimalEqual(t, "100000", terms.MinAmountThreshold)
		testutil.AssertDecimalEqual(t, "2000000", terms.ProbeAmount)
		assert.True(t, terms.MaxMonthlyInstallment.IsZero())
		assert.Equal(t, []string{"tenor <= 9"}, terms.EligibilityRules)
	})

	t.Run("explicit threshold wins", func(t *testing.T) {
		q := &fakeQuerier{row: productRow(nullDec("500000"), nil)}

		terms, err := NewProductCatalogRepo(q, defaultThreshold).ProductTerms(context.Background(), "J1")

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "500000", terms.MinAmountThreshold)
		assert.Empty(t, terms.EligibilityRules)
	})

	t.Run("unknown product", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

		_, err := NewProductCatalogRepo(q, defaultThreshold).ProductTerms(context.Background(), "ZZ")

		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})

	t.Run("invalid row", func(t *testing.T) {
		row := productRow(decimal.NullDecimal{}, nil)
		row.values[4], row.values[5] = 6, 3
		q := &fakeQuerier{row: row}

		_, err := NewProductCatalogRepo(q, defaultThreshold).ProductTerms(context.Background(), "J1")

		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})
}

func TestCreditLimitRepo(t *testing.T) {
	t.Run("returns limit in configured currency", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{values: []any{decimal.NewFromInt(7_500_000)}}}

		limit, err := NewCreditLimitRepo(q, money.IDR).AvailableLimit(context.Background(), "cust-1")

		require.NoError(t, err)
		assert.Equal(t, "cust-1", limit.CustomerID)
		assert.Equal(t, money.IDR, limit.Available.Currency())
		testutil.AssertDecimalEqual(t, "7500000", limit.Available.Amount())
	})

	t.Run("overdrawn limit reads as zero", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{values: []any{decimal.NewFromInt(-100)}}}

		limit, err := NewCreditLimitRepo(q, money.IDR).AvailableLimit(context.Background(), "cust-1")

		require.NoError(t, err)
		assert.False(t, limit.HasHeadroom())
	})

	t.Run("unknown customer", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

		_, err := NewCreditLimitRepo(q, money.IDR).AvailableLimit(context.Background(), "ghost")

		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})
}
