package payoff

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// Policy decides how one month of repayment capacity is spread over the open debts
type Policy interface {
	Name() domain.PolicyName
	// Prepare is called once per simulation, before the first month, and
	// returns the routine that pays a single month. Anything a policy derives
	// from the starting position (such as a payoff order) is fixed here.
	Prepare(l *Ledger) MonthlyPayment
}

// MonthlyPayment applies one month of capacity to the ledger
type MonthlyPayment func(l *Ledger, capacity decimal.Decimal)

// Logger is the subset of calculation.Logger the simulator writes to
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
