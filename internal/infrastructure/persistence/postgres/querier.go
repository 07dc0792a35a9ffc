package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// querier is the subset of *pgxpool.Pool the lookups use.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// notFound maps pgx.ErrNoRows to valueobject.ErrNotFound.
func notFound(err error, what string, key string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", what, key, valueobject.ErrNotFound)
	}
	return fmt.Errorf("query %s %q: %w", what, key, err)
}
