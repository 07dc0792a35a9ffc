package eligibility

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

type catalogFunc func(ctx context.Context, productCode string) (valueobject.ProductTerms, error)

func (f catalogFunc) ProductTerms(ctx context.Context, productCode string) (valueobject.ProductTerms, error) {
	return f(ctx, productCode)
}

func TestValidatingCatalog_ProductTerms(t *testing.T) {
	ctx := context.Background()

	t.Run("valid rules pass through", func(t *testing.T) {
		c := NewValidatingCatalog(catalogFunc(func(context.Context, string) (valueobject.ProductTerms, error) {
			return termsWith("tenor % 3 == 0", "installment <= 800000.0"), nil
		}), newFilter(t))

		terms, err := c.ProductTerms(ctx, "J1")

		require.NoError(t, err)
		assert.Len(t, terms.EligibilityRules, 2)
	})

	t.Run("uncompilable rule is a configuration error", func(t *testing.T) {
		c := NewValidatingCatalog(catalogFunc(func(context.Context, string) (valueobject.ProductTerms, error) {
			return termsWith("tenor <= 6", "tenor >"), nil
		}), newFilter(t))

		_, err := c.ProductTerms(ctx, "J1")

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
		assert.Contains(t, err.Error(), `product "J1"`)
	})

	t.Run("non-boolean rule is a configuration error", func(t *testing.T) {
		c := NewValidatingCatalog(catalogFunc(func(context.Context, string) (valueobject.ProductTerms, error) {
			return termsWith("tenor + 1"), nil
		}), newFilter(t))

		_, err := c.ProductTerms(ctx, "J1")

		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})

	t.Run("lookup errors pass through", func(t *testing.T) {
		c := NewValidatingCatalog(catalogFunc(func(_ context.Context, code string) (valueobject.ProductTerms, error) {
			return valueobject.ProductTerms{}, fmt.Errorf("product %q: %w", code, valueobject.ErrNotFound)
		}), newFilter(t))

		_, err := c.ProductTerms(ctx, "ZZ")

		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})
}
