package breakeven

import (
	"context"
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/payoff"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches for the capacity needed to meet a payoff deadline
type Solver struct {
	Simulator *payoff.Simulator
	Options   SolverOptions
}

// NewSolver creates a new capacity solver
func NewSolver(sim *payoff.Simulator, options SolverOptions) *Solver {
	return &Solver{
		Simulator: sim,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(sim *payoff.Simulator) *Solver {
	return NewSolver(sim, DefaultSolverOptions())
}

// RequiredCapacity finds the smallest monthly capacity, to the cent, for
// which the policy clears all debts within targetMonths. Feasibility is not
// strictly monotone for the ordered policies, so the answer is the smallest
// feasible capacity the bisection reaches.
func (s *Solver) RequiredCapacity(ctx context.Context, req CapacityRequest) (*CapacityResult, error) {
	if err := req.Validate(s.Simulator.Horizon()); err != nil {
		return nil, err
	}

	policy, err := payoff.PolicyByName(string(req.Policy))
	if err != nil {
		return nil, &SolverError{
			Operation: "required_capacity",
			Message:   "invalid policy",
			Cause:     err,
		}
	}

	opts := s.options()
	feasible := func(capacity decimal.Decimal) (domain.PayoffSimulationResult, bool) {
		r := s.Simulator.Run(policy, req.Debts, capacity)
		return r, !r.HorizonReached && r.Months <= req.TargetMonths
	}

	// Grow the upper bound from the total balance until the deadline is met
	hi := domain.TotalRemaining(req.Debts).RoundUp(2)
	best, ok := feasible(hi)
	doublings := 0
	for !ok {
		if doublings >= opts.MaxDoublings {
			return nil, &SolverError{
				Operation: "required_capacity",
				Message:   fmt.Sprintf("%s cannot clear all debts within %d months at any capacity tried (up to %s)", req.Policy, req.TargetMonths, hi.StringFixed(2)),
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi = hi.Mul(two)
		best, ok = feasible(hi)
		doublings++
	}

	lo := decimal.Zero
	iterations := 0
	for iterations < opts.MaxIterations && hi.Sub(lo).GreaterThan(opts.Tolerance) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid := lo.Add(hi).Div(two).RoundUp(2)
		if mid.Equal(hi) {
			break
		}
		if r, ok := feasible(mid); ok {
			hi, best = mid, r
		} else {
			lo = mid
		}
	}

	return &CapacityResult{
		Policy:           policy.Name(),
		TargetMonths:     req.TargetMonths,
		RequiredCapacity: hi,
		Simulation:       best,
		Iterations:       iterations,
		ConvergenceInfo: fmt.Sprintf("bracket [%s, %s] after %d iterations",
			lo.StringFixed(2), hi.StringFixed(2), iterations),
	}, nil
}

func (s *Solver) options() SolverOptions {
	opts := s.Options
	defaults := DefaultSolverOptions()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaults.MaxIterations
	}
	if opts.MaxDoublings <= 0 {
		opts.MaxDoublings = defaults.MaxDoublings
	}
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = defaults.Tolerance
	}
	return opts
}
