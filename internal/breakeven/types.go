package breakeven

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// CapacityRequest asks for the smallest monthly capacity that clears every
// debt within TargetMonths under the given policy
type CapacityRequest struct {
	Debts        []domain.Debt
	Policy       domain.PolicyName
	TargetMonths int
}

// CapacityResult is the outcome of one capacity search
type CapacityResult struct {
	Policy           domain.PolicyName             `json:"policy"`
	TargetMonths     int                           `json:"target_months"`
	RequiredCapacity decimal.Decimal               `json:"required_capacity"`
	Simulation       domain.PayoffSimulationResult `json:"simulation"`
	Iterations       int                           `json:"iterations"`
	ConvergenceInfo  string                        `json:"convergence_info"`
}

// MultiPolicyResult compares the required capacity of every policy
type MultiPolicyResult struct {
	TargetMonths    int              `json:"target_months"`
	Results         []CapacityResult `json:"results"`
	Unreachable     []string         `json:"unreachable,omitempty"`
	Cheapest        *CapacityResult  `json:"cheapest,omitempty"`
	Recommendations []string         `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Stop when the bracket is this narrow
	MaxIterations int             // Bisection steps
	MaxDoublings  int             // Attempts to find a feasible upper bound
}

// DefaultSolverOptions returns cent precision with generous iteration limits
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 64,
		MaxDoublings:  40,
	}
}

// Validate checks the request before any simulation runs
func (r CapacityRequest) Validate(horizon int) error {
	if len(domain.OpenDebts(r.Debts)) == 0 {
		return &SolverError{
			Operation: "validate_request",
			Message:   "no open debts to pay off",
		}
	}
	if r.TargetMonths <= 0 {
		return &SolverError{
			Operation: "validate_request",
			Message:   "target months must be positive",
		}
	}
	if r.TargetMonths > horizon {
		return &SolverError{
			Operation: "validate_request",
			Message:   "target months exceeds the simulation horizon",
		}
	}
	return nil
}

// SolverError represents errors from the capacity solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
