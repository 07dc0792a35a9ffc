package eligibility

import (
	"context"
	"fmt"

	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// ValidatingCatalog rejects products whose eligibility rules do not compile,
// so a broken rule surfaces as a configuration error instead of silently
// removing every tenor.
type ValidatingCatalog struct {
	catalog port.ProductCatalog
	filter  *CELFilter
}

var _ port.ProductCatalog = (*ValidatingCatalog)(nil)

// NewValidatingCatalog wraps catalog with rule validation by filter.
func NewValidatingCatalog(catalog port.ProductCatalog, filter *CELFilter) *ValidatingCatalog {
	return &ValidatingCatalog{catalog: catalog, filter: filter}
}

// ProductTerms implements port.ProductCatalog.
func (c *ValidatingCatalog) ProductTerms(ctx context.Context, productCode string) (valueobject.ProductTerms, error) {
	terms, err := c.catalog.ProductTerms(ctx, productCode)
	if err != nil {
		return valueobject.ProductTerms{}, err
	}
	if err := c.filter.Validate(terms.EligibilityRules); err != nil {
		return valueobject.ProductTerms{}, fmt.Errorf("product %q: %w", productCode, err)
	}
	return terms, nil
}
