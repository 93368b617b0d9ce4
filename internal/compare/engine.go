package compare

import (
	"context"
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/calculation"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/payoff"
	"github.com/shopspring/decimal"
)

// CompareEngine runs the complete planning pipeline for one household:
// protected budget, repayment capacity, payoff policies and allocation
type CompareEngine struct {
	Calculator        *calculation.ProtectedBudgetCalculator
	Simulator         *payoff.Simulator
	MetricsCalculator *MetricsCalculator
	logger            calculation.Logger
}

// CompareOptions tunes a single comparison run
type CompareOptions struct {
	// CapacityOverride replaces the computed repayment capacity, for
	// what-if runs by a counsellor
	CapacityOverride *decimal.Decimal
	CaseName         string
	CasePath         string
}

// NewCompareEngine creates an engine for one norm revision
func NewCompareEngine(norms domain.NormTable) *CompareEngine {
	return &CompareEngine{
		Calculator:        calculation.NewCalculator(norms),
		Simulator:         payoff.NewSimulator(norms.Payoff),
		MetricsCalculator: NewMetricsCalculator(),
		logger:            calculation.NopLogger{},
	}
}

// SetLogger installs a logger on the engine and everything it drives
func (ce *CompareEngine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	ce.logger = l
	ce.Calculator.SetLogger(l)
	ce.Simulator.SetLogger(l)
}

// Compare runs the pipeline. The only error it returns is the context's.
func (ce *CompareEngine) Compare(ctx context.Context, profile domain.HouseholdProfile, debts []domain.Debt, opts CompareOptions) (*ComparisonSet, error) {
	cs := &ComparisonSet{
		CaseName: opts.CaseName,
		CasePath: opts.CasePath,
	}

	cs.Budget = ce.Calculator.Compute(profile)
	cs.Capacity = cs.Budget.RepaymentCapacity
	if opts.CapacityOverride != nil {
		cs.Capacity = *opts.CapacityOverride
		if cs.Capacity.IsNegative() {
			cs.Capacity = decimal.Zero
		}
		cs.CapacityOverridden = true
		ce.logger.Infof("using capacity override %s instead of computed %s",
			cs.Capacity.StringFixed(2), cs.Budget.RepaymentCapacity.StringFixed(2))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison cancelled after budget: %w", err)
	}

	cs.Simulation = ce.Simulator.Simulate(debts, cs.Capacity)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison cancelled after simulation: %w", err)
	}

	cs.Allocation = ce.Simulator.Allocate(debts, cs.Capacity)

	if len(domain.OpenDebts(debts)) > 0 {
		for _, r := range cs.Simulation.Results() {
			cs.Results = append(cs.Results, ce.MetricsCalculator.CalculateMetrics(r))
		}
		ce.rank(cs)
	}

	cs.Recommendations = GenerateRecommendations(cs)
	cs.Warnings = GenerateWarnings(cs, ce.Simulator.Horizon())

	ce.logger.Debugf("comparison done: capacity %s, fastest %q, cheapest %q",
		cs.Capacity.StringFixed(2), cs.Fastest, cs.Cheapest)
	return cs, nil
}

func (ce *CompareEngine) rank(cs *ComparisonSet) {
	cs.InterestSaved = decimal.Zero

	if fastest, ok := pickFastest(cs.Results); ok {
		cs.Fastest = fastest.Policy
	}

	cheapest, ok := pickCheapest(cs.Results)
	if !ok {
		return
	}
	cs.Cheapest = cheapest.Policy

	for i, r := range cs.Results {
		cs.Results[i] = ce.MetricsCalculator.CalculateComparison(r, cheapest)
		if !r.HorizonReached {
			if saved := r.TotalInterest.Sub(cheapest.TotalInterest); saved.GreaterThan(cs.InterestSaved) {
				cs.InterestSaved = saved
			}
		}
	}
}
