package compare

import (
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
	"github.com/shopspring/decimal"
)

// PolicyResult is one policy's outcome with metrics relative to the best policy
type PolicyResult struct {
	Policy           domain.PolicyName `json:"policy" yaml:"policy"`
	Months           int               `json:"months" yaml:"months"`
	TotalInterest    decimal.Decimal   `json:"total_interest" yaml:"total_interest"`
	TotalPaid        decimal.Decimal   `json:"total_paid" yaml:"total_paid"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance" yaml:"remaining_balance"`
	HorizonReached   bool              `json:"horizon_reached" yaml:"horizon_reached"`

	// Comparison to the cheapest policy
	InterestDiffFromBest decimal.Decimal `json:"interest_diff_from_best" yaml:"interest_diff_from_best"`
	MonthsDiffFromBest   int             `json:"months_diff_from_best" yaml:"months_diff_from_best"`
}

// ComparisonSet is the full picture for one household: protected budget,
// the three payoff policies and a one-month allocation proposal
type ComparisonSet struct {
	CaseName           string                       `json:"case_name,omitempty" yaml:"case_name,omitempty"`
	CasePath           string                       `json:"case_path,omitempty" yaml:"case_path,omitempty"`
	Budget             domain.ProtectedBudgetResult `json:"budget" yaml:"budget"`
	Capacity           decimal.Decimal              `json:"capacity" yaml:"capacity"`
	CapacityOverridden bool                         `json:"capacity_overridden" yaml:"capacity_overridden"`
	Results            []PolicyResult               `json:"results" yaml:"results"`
	Fastest            domain.PolicyName            `json:"fastest,omitempty" yaml:"fastest,omitempty"`
	Cheapest           domain.PolicyName            `json:"cheapest,omitempty" yaml:"cheapest,omitempty"`
	InterestSaved      decimal.Decimal              `json:"interest_saved" yaml:"interest_saved"`
	Allocation         domain.AllocationProposal    `json:"allocation" yaml:"allocation"`
	Simulation         domain.SimulationSet         `json:"-" yaml:"-"`
	Recommendations    []string                     `json:"recommendations" yaml:"recommendations"`
	Warnings           []string                     `json:"warnings" yaml:"warnings"`
}

// Result returns the comparison entry for a policy
func (cs *ComparisonSet) Result(name domain.PolicyName) (PolicyResult, bool) {
	for _, r := range cs.Results {
		if r.Policy == name {
			return r, true
		}
	}
	return PolicyResult{}, false
}

// ToReport converts the set into an output.Report for the generic formatters
func (cs *ComparisonSet) ToReport() *output.Report {
	report := output.NewReport(cs.CaseName)
	budget := cs.Budget
	simulation := cs.Simulation
	allocation := cs.Allocation
	report.Budget = &budget
	report.Simulation = &simulation
	report.Allocation = &allocation
	report.Recommendations = cs.Recommendations
	report.Warnings = cs.Warnings
	return report
}

// MetricsCalculator extracts comparison metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics copies the headline numbers of a simulation
func (mc *MetricsCalculator) CalculateMetrics(r domain.PayoffSimulationResult) PolicyResult {
	return PolicyResult{
		Policy:           r.Policy,
		Months:           r.Months,
		TotalInterest:    r.TotalInterest,
		TotalPaid:        r.TotalPaid,
		RemainingBalance: r.RemainingBalance,
		HorizonReached:   r.HorizonReached,
	}
}

// CalculateComparison fills in the difference to the best policy
func (mc *MetricsCalculator) CalculateComparison(r, best PolicyResult) PolicyResult {
	r.InterestDiffFromBest = r.TotalInterest.Sub(best.TotalInterest)
	r.MonthsDiffFromBest = r.Months - best.Months
	return r
}

// pickFastest returns the policy with the fewest months among those that
// finish; ties go to the lower interest, then presentation order
func pickFastest(results []PolicyResult) (PolicyResult, bool) {
	var best *PolicyResult
	for i := range results {
		r := &results[i]
		if r.HorizonReached {
			continue
		}
		if best == nil || r.Months < best.Months ||
			(r.Months == best.Months && r.TotalInterest.LessThan(best.TotalInterest)) {
			best = r
		}
	}
	if best == nil {
		return PolicyResult{}, false
	}
	return *best, true
}

// pickCheapest returns the finishing policy with the lowest interest; ties
// go to fewer months, then presentation order. Results that hit the horizon
// only carry a lower bound on interest and are never cheapest.
func pickCheapest(results []PolicyResult) (PolicyResult, bool) {
	var best *PolicyResult
	for i := range results {
		r := &results[i]
		if r.HorizonReached {
			continue
		}
		if best == nil || r.TotalInterest.LessThan(best.TotalInterest) ||
			(r.TotalInterest.Equal(best.TotalInterest) && r.Months < best.Months) {
			best = r
		}
	}
	if best == nil {
		return PolicyResult{}, false
	}
	return *best, true
}

// GenerateRecommendations creates plain-language advice from a comparison
func GenerateRecommendations(cs *ComparisonSet) []string {
	recommendations := []string{}

	if len(cs.Results) == 0 {
		return recommendations
	}

	if cheapest, ok := cs.Result(cs.Cheapest); ok {
		rec := fmt.Sprintf("Lowest cost: %s pays %s in interest", cheapest.Policy, output.FormatCurrency(cheapest.TotalInterest))
		if cs.InterestSaved.IsPositive() {
			rec += fmt.Sprintf(", saving %s compared to the most expensive policy", output.FormatCurrency(cs.InterestSaved))
		}
		recommendations = append(recommendations, rec)
	}

	if fastest, ok := cs.Result(cs.Fastest); ok {
		recommendations = append(recommendations,
			fmt.Sprintf("Fastest: %s is debt-free in %d months", fastest.Policy, fastest.Months))
	}

	if cs.Cheapest == domain.PolicyAvalanche && cs.Fastest == domain.PolicyAvalanche {
		recommendations = append(recommendations, "Avalanche is both cheapest and fastest for these debts")
	} else if snowball, ok := cs.Result(domain.PolicySnowball); ok && !snowball.HorizonReached &&
		cs.Cheapest != domain.PolicySnowball && snowball.InterestDiffFromBest.LessThan(decimal.NewFromInt(10)) {
		recommendations = append(recommendations,
			"Snowball costs little extra here and clears individual creditors sooner")
	}

	if cs.Allocation.FloorApplied {
		recommendations = append(recommendations,
			"Every creditor can receive the minimum monthly amount in a proportional arrangement")
	}

	return recommendations
}

// GenerateWarnings lists conditions the household or its counsellor must act on
func GenerateWarnings(cs *ComparisonSet, horizon int) []string {
	warnings := []string{}

	if !cs.CapacityOverridden {
		switch cs.Budget.Status {
		case domain.StatusNotFeasible:
			warnings = append(warnings, fmt.Sprintf("Repayment capacity of %s is too low for a payment arrangement",
				output.FormatCurrency(cs.Budget.RepaymentCapacity)))
		case domain.StatusMarginal:
			warnings = append(warnings, fmt.Sprintf("Repayment capacity of %s is marginal; any setback stalls repayment",
				output.FormatCurrency(cs.Budget.RepaymentCapacity)))
		}
		if cs.Budget.CapApplied {
			warnings = append(warnings, fmt.Sprintf("Protected budget capped at %s by the income cap (%s before the cap)",
				output.FormatCurrency(cs.Budget.CapAmount), output.FormatCurrency(cs.Budget.PreCapAmount)))
		}
	}

	for _, r := range cs.Results {
		if r.HorizonReached {
			warnings = append(warnings, fmt.Sprintf("%s does not clear the debts within %d months; %s would remain",
				r.Policy, horizon, output.FormatCurrency(r.RemainingBalance)))
		}
	}
	return warnings
}
