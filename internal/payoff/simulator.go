package payoff

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

const fallbackHorizon = 360

// Simulator runs month-by-month payoff simulations. It is stateless apart
// from its configuration and safe for concurrent use.
type Simulator struct {
	Norms  domain.PayoffNorms
	Logger Logger
}

// NewSimulator creates a simulator for the given payoff norms
func NewSimulator(norms domain.PayoffNorms) *Simulator {
	return &Simulator{
		Norms:  norms,
		Logger: nopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		s.Logger = nopLogger{}
		return
	}
	s.Logger = l
}

// Horizon is the maximum number of simulated months
func (s *Simulator) Horizon() int {
	if s.Norms.HorizonMonths <= 0 {
		return fallbackHorizon
	}
	return s.Norms.HorizonMonths
}

// Simulate runs all three policies over the same debts and capacity
func (s *Simulator) Simulate(debts []domain.Debt, capacity decimal.Decimal) domain.SimulationSet {
	return domain.SimulationSet{
		Capacity:     nonNegative(capacity),
		Snowball:     s.Run(NewSnowballPolicy(), debts, capacity),
		Avalanche:    s.Run(NewAvalanchePolicy(), debts, capacity),
		Proportional: s.Run(NewProportionalPolicy(), debts, capacity),
	}
}

// Run simulates a single policy. Debts without a remaining balance are
// ignored; when none remain the result is all zeros. The loop stops when
// every balance is within epsilon or the horizon is reached, whichever
// comes first.
func (s *Simulator) Run(policy Policy, debts []domain.Debt, capacity decimal.Decimal) domain.PayoffSimulationResult {
	result := domain.PayoffSimulationResult{
		Policy:           policy.Name(),
		TotalInterest:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		RemainingBalance: decimal.Zero,
		Schedule:         []domain.DebtSchedule{},
	}

	open := domain.OpenDebts(debts)
	if len(open) == 0 {
		return result
	}
	capacity = nonNegative(capacity)

	ledger := newLedger(open, s.Norms)
	pay := policy.Prepare(ledger)
	horizon := s.Horizon()

	month := 0
	for month < horizon && !ledger.settled() {
		month++
		ledger.accrue()
		pay(ledger, capacity)
		ledger.recordPayoffs(month)
	}

	result.Months = month
	result.TotalInterest = ledger.totalInterest.Round(2)
	result.TotalPaid = ledger.paid.Round(2)
	result.RemainingBalance = ledger.TotalBalance().Round(2)
	result.HorizonReached = !ledger.settled()
	result.Schedule = ledger.schedule()

	if result.HorizonReached {
		s.Logger.Warnf("%s: %s still owed after %d months at capacity %s",
			policy.Name(), result.RemainingBalance.StringFixed(2), horizon, capacity.StringFixed(2))
	} else {
		s.Logger.Debugf("%s: paid off in %d months, interest %s",
			policy.Name(), result.Months, result.TotalInterest.StringFixed(2))
	}
	return result
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
