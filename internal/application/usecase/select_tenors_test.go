package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/application/dto"
	"github.com/lendcore/loan-pricing/internal/application/usecase"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

func TestSelectTenors_Execute(t *testing.T) {
	catalog := &mockProductCatalog{
		productTermsFunc: func(context.Context, string) (valueobject.ProductTerms, error) {
			terms := testTerms()
			terms.MaxMonthlyInstallment = decimal.NewFromInt(800_000)
			return terms, nil
		},
	}
	uc := usecase.NewSelectTenorsUseCase(&mockCreditLimitProvider{}, catalog,
		service.NewTenorSelector(service.NewAffordabilityFilter()), discardLogger())

	t.Run("applies affordability to the probe amount", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.SelectTenorsRequest{CustomerID: "cust-001", ProductCode: "J1"})

		require.NoError(t, err)
		assert.Equal(t, []int{3, 4, 5, 6}, resp.Tenors)
	})

	t.Run("small requested amount", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.SelectTenorsRequest{
			CustomerID: "cust-001", ProductCode: "J1", RequestedAmount: decimal.NewFromInt(99_999),
		})

		require.NoError(t, err)
		assert.Equal(t, []int{1}, resp.Tenors)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.SelectTenorsRequest{ProductCode: "J1"})
		assert.ErrorIs(t, err, valueobject.ErrInvalidRequest)
	})
}
