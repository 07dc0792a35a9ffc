package port

import (
	"context"

	"github.com/lendcore/loan-pricing/internal/domain/event"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Collaborator ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// FeeRuleProvider returns the fee cap in force right now.
type FeeRuleProvider interface {
	CurrentFeeRule(ctx context.Context) (valueobject.FeeRule, error)
}

// ProductCatalog resolves pricing terms for a product code. Unknown codes
// return an error wrapping valueobject.ErrNotFound.
type ProductCatalog interface {
	ProductTerms(ctx context.Context, productCode string) (valueobject.ProductTerms, error)
}

// CreditLimitProvider returns the customer's unused credit limit.
type CreditLimitProvider interface {
	AvailableLimit(ctx context.Context, customerID string) (valueobject.CreditLimit, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
