package testutil

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual compares decimals by value, so "1.50" equals "1.5".
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	expected := decimal.RequireFromString(want)
	if got.Equal(expected) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("decimals differ: want %s, got %s", want, got.String()), msgAndArgs...)
}
