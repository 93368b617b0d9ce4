package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
)

// RequiredCapacityAll runs the capacity search for every policy and picks
// the one that needs the least monthly capacity. Policies that cannot meet
// the deadline are listed as unreachable rather than failing the whole run.
func (s *Solver) RequiredCapacityAll(ctx context.Context, debts []domain.Debt, targetMonths int) (*MultiPolicyResult, error) {
	if err := (CapacityRequest{Debts: debts, TargetMonths: targetMonths}).Validate(s.Simulator.Horizon()); err != nil {
		return nil, err
	}

	multi := &MultiPolicyResult{
		TargetMonths: targetMonths,
		Results:      []CapacityResult{},
	}

	for _, name := range domain.PolicyNames {
		result, err := s.RequiredCapacity(ctx, CapacityRequest{
			Debts:        debts,
			Policy:       name,
			TargetMonths: targetMonths,
		})
		if err != nil {
			var solverErr *SolverError
			if errors.As(err, &solverErr) {
				multi.Unreachable = append(multi.Unreachable, string(name))
				continue
			}
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &SolverError{
			Operation: "required_capacity_all",
			Message:   fmt.Sprintf("no policy clears the debts within %d months", targetMonths),
		}
	}

	for i := range multi.Results {
		r := &multi.Results[i]
		if multi.Cheapest == nil ||
			r.RequiredCapacity.LessThan(multi.Cheapest.RequiredCapacity) ||
			(r.RequiredCapacity.Equal(multi.Cheapest.RequiredCapacity) &&
				r.Simulation.TotalInterest.LessThan(multi.Cheapest.Simulation.TotalInterest)) {
			multi.Cheapest = r
		}
	}

	multi.Recommendations = s.generateRecommendations(multi)
	return multi, nil
}

func (s *Solver) generateRecommendations(multi *MultiPolicyResult) []string {
	var recs []string

	best := multi.Cheapest
	recs = append(recs, fmt.Sprintf("%s needs the lowest monthly capacity: %s to be debt-free within %d months",
		best.Policy, best.RequiredCapacity.StringFixed(2), multi.TargetMonths))

	for _, r := range multi.Results {
		if r.Policy == best.Policy {
			continue
		}
		diff := r.RequiredCapacity.Sub(best.RequiredCapacity)
		if diff.IsPositive() {
			recs = append(recs, fmt.Sprintf("%s needs %s more per month", r.Policy, diff.StringFixed(2)))
		}
	}

	for _, name := range multi.Unreachable {
		recs = append(recs, fmt.Sprintf("%s cannot meet a %d-month deadline: %s",
			name, multi.TargetMonths, unreachableReason(domain.PolicyName(name))))
	}
	return recs
}

func unreachableReason(policy domain.PolicyName) string {
	switch policy {
	case domain.PolicySnowball, domain.PolicyAvalanche:
		return "leftover budget only reaches one debt per month"
	default:
		return "no capacity within the search range clears every debt in time"
	}
}
