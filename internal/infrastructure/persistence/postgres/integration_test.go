//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/internal/infrastructure/persistence/postgres"
	"github.com/lendcore/loan-pricing/pkg/money"
	"github.com/lendcore/loan-pricing/pkg/testutil"
)

func TestCollaboratorLookups(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.ExecSQLDir(t, "testdata")

	t.Run("active fee rule", func(t *testing.T) {
		rule, err := postgres.NewFeeRuleRepo(pg.Pool, testutil.TestFeeRuleFeature).CurrentFeeRule(ctx)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "0.004", rule.DailyMaxFeeRate())
	})

	t.Run("fee rule without daily max fee", func(t *testing.T) {
		_, err := postgres.NewFeeRuleRepo(pg.Pool, "broken_fee").CurrentFeeRule(ctx)
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})

	catalog := postgres.NewProductCatalogRepo(pg.Pool, decimal.NewFromInt(100_000))

	t.Run("plain product", func(t *testing.T) {
		terms, err := catalog.ProductTerms(ctx, testutil.TestProductCode)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "0.04", terms.MonthlyInterestRate)
		testutil.AssertDecimalEqual(t, "100000", terms.MinAmountThreshold)
		assert.Equal(t, 6, terms.MaxTenor)
		assert.Empty(t, terms.EligibilityRules)
	})

	t.Run("product with rules", func(t *testing.T) {
		terms, err := catalog.ProductTerms(ctx, testutil.TestProductWithRules)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "250000", terms.MinAmountThreshold)
		testutil.AssertDecimalEqual(t, "800000", terms.MaxMonthlyInstallment)
		assert.True(t, terms.CashbackRate.IsZero())
		assert.Equal(t, []string{"tenor % 3 == 0"}, terms.EligibilityRules)
	})

	t.Run("misconfigured product", func(t *testing.T) {
		_, err := catalog.ProductTerms(ctx, "BROKEN")
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := catalog.ProductTerms(ctx, "NOPE")
		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})

	limits := postgres.NewCreditLimitRepo(pg.Pool, money.IDR)

	t.Run("available limit", func(t *testing.T) {
		limit, err := limits.AvailableLimit(ctx, testutil.TestCustomerID)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, "10000000", limit.Available.Amount())
	})

	t.Run("overdrawn limit", func(t *testing.T) {
		limit, err := limits.AvailableLimit(ctx, testutil.TestCustomerNoLimit)
		require.NoError(t, err)
		assert.False(t, limit.HasHeadroom())
	})
}
