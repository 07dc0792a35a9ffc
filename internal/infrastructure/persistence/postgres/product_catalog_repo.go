package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// ProductCatalogRepo implements port.ProductCatalog from credit_matrix_products.
type ProductCatalogRepo struct {
	db                   querier
	smallAmountThreshold decimal.Decimal
}

// NewProductCatalogRepo applies smallAmountThreshold to products that leave
// min_amount_threshold NULL.
func NewProductCatalogRepo(db querier, smallAmountThreshold decimal.Decimal) *ProductCatalogRepo {
	return &ProductCatalogRepo{db: db, smallAmountThreshold: smallAmountThreshold}
}

// ProductTerms loads and validates the terms of an active product.
func (r *ProductCatalogRepo) ProductTerms(ctx context.Context, productCode string) (valueobject.ProductTerms, error) {
	const query = `
		SELECT product_code, monthly_interest_rate, provision_rate, cashback_rate,
		       min_tenor, max_tenor,
		       min_amount_threshold, probe_amount, max_monthly_installment,
		       eligibility_rules
		FROM credit_matrix_products
		WHERE product_code = $1 AND is_active
	`
	var (
		terms                           valueobject.ProductTerms
		cashback, threshold, probe, dbr decimal.NullDecimal
		rules                           []string
	)
	err := r.db.QueryRow(ctx, query, productCode).Scan(
		&terms.Code, &terms.MonthlyInterestRate, &terms.ProvisionRate, &cashback,
		&terms.MinTenor, &terms.MaxTenor,
		&threshold, &probe, &dbr,
		&rules,
	)
	if err != nil {
		return valueobject.ProductTerms{}, notFound(err, "product", productCode)
	}

	terms.CashbackRate = cashback.Decimal
	terms.MinAmountThreshold = r.smallAmountThreshold
	if threshold.Valid {
		terms.MinAmountThreshold = threshold.Decimal
	}
	terms.ProbeAmount = probe.Decimal
	terms.MaxMonthlyInstallment = dbr.Decimal
	terms.EligibilityRules = rules

	if err := terms.Validate(); err != nil {
		return valueobject.ProductTerms{}, fmt.Errorf("product %q: %w", productCode, err)
	}
	return terms, nil
}
