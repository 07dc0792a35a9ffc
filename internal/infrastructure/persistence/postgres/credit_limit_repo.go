package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// CreditLimitRepo implements port.CreditLimitProvider from account_limits.
type CreditLimitRepo struct {
	db       querier
	currency money.Currency
}

// NewCreditLimitRepo denominates limits in currency.
func NewCreditLimitRepo(db querier, currency money.Currency) *CreditLimitRepo {
	return &CreditLimitRepo{db: db, currency: currency}
}

// AvailableLimit returns the customer's unused limit. Overdrawn limits are
// reported as zero.
func (r *CreditLimitRepo) AvailableLimit(ctx context.Context, customerID string) (valueobject.CreditLimit, error) {
	const query = `
		SELECT available_limit
		FROM account_limits
		WHERE customer_id = $1
	`
	var available decimal.Decimal
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&available); err != nil {
		return valueobject.CreditLimit{}, notFound(err, "account limit", customerID)
	}

	return valueobject.CreditLimit{
		CustomerID: customerID,
		Available:  money.New(decimal.Max(available, decimal.Zero), r.currency),
	}, nil
}
