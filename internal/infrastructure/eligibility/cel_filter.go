package eligibility

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// costLimit bounds the evaluation cost of a single rule.
const costLimit = 100_000

// CELFilter is a service.TenorFilter evaluating a product's eligibility
// rules. Each rule is a boolean CEL expression over:
//
//	tenor        int     candidate tenor in months
//	amount       double  probe amount
//	rate         double  monthly interest rate
//	installment  double  estimated regular installment at this tenor
//
// A tenor passes only when every rule evaluates to true. Rules that fail to
// compile or evaluate reject the tenor.
type CELFilter struct {
	env    *cel.Env
	logger *slog.Logger

	mu       sync.RWMutex
	programs map[string]cel.Program
}

var _ service.TenorFilter = (*CELFilter)(nil)

// NewCELFilter builds the CEL environment.
func NewCELFilter(logger *slog.Logger) (*CELFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("tenor", cel.IntType),
		cel.Variable("amount", cel.DoubleType),
		cel.Variable("rate", cel.DoubleType),
		cel.Variable("installment", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &CELFilter{env: env, logger: logger, programs: make(map[string]cel.Program)}, nil
}

// Validate compiles every rule, reporting the first that does not compile to
// a boolean.
func (f *CELFilter) Validate(rules []string) error {
	for _, rule := range rules {
		if _, err := f.program(rule); err != nil {
			return err
		}
	}
	return nil
}

// Allows implements service.TenorFilter.
func (f *CELFilter) Allows(terms valueobject.ProductTerms, tenorMonths int, amount decimal.Decimal) bool {
	if len(terms.EligibilityRules) == 0 {
		return true
	}

	vars := map[string]any{
		"tenor":       int64(tenorMonths),
		"amount":      amount.InexactFloat64(),
		"rate":        terms.MonthlyInterestRate.InexactFloat64(),
		"installment": service.EstimateInstallment(amount, tenorMonths, terms.MonthlyInterestRate).InexactFloat64(),
	}

	for _, rule := range terms.EligibilityRules {
		prog, err := f.program(rule)
		if err != nil {
			f.logger.Error("eligibility rule rejected", "product_code", terms.Code, "rule", rule, "error", err)
			return false
		}
		out, _, err := prog.Eval(vars)
		if err != nil {
			f.logger.Warn("eligibility rule evaluation failed",
				"product_code", terms.Code, "rule", rule, "tenor", tenorMonths, "error", err)
			return false
		}
		if ok, isBool := out.Value().(bool); !isBool || !ok {
			return false
		}
	}
	return true
}

// program returns the compiled program for rule, compiling it on first use.
func (f *CELFilter) program(rule string) (cel.Program, error) {
	f.mu.RLock()
	prog, ok := f.programs[rule]
	f.mu.RUnlock()
	if ok {
		return prog, nil
	}

	ast, issues := f.env.Compile(rule)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", valueobject.ErrInvalidConfig, rule, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: rule %q yields %s, want bool", valueobject.ErrInvalidConfig, rule, ast.OutputType())
	}
	prog, err := f.env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: program %q: %v", valueobject.ErrInvalidConfig, rule, err)
	}

	f.mu.Lock()
	f.programs[rule] = prog
	f.mu.Unlock()
	return prog, nil
}
