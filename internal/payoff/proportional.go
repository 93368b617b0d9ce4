package payoff

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// proportionalPolicy splits capacity by each debt's share of the current
// total balance. Shares are re-derived every month and truncated to cents so
// a month never pays out more than capacity.
type proportionalPolicy struct{}

// NewProportionalPolicy spreads capacity in proportion to current balances
func NewProportionalPolicy() Policy { return proportionalPolicy{} }

func (proportionalPolicy) Name() domain.PolicyName { return domain.PolicyProportional }

func (proportionalPolicy) Prepare(*Ledger) MonthlyPayment {
	return func(l *Ledger, capacity decimal.Decimal) {
		total := l.TotalBalance()
		if !total.IsPositive() || !capacity.IsPositive() {
			return
		}

		amounts := make([]decimal.Decimal, l.Len())
		for i := 0; i < l.Len(); i++ {
			if l.IsOpen(i) {
				amounts[i] = capacity.Mul(l.Balance(i)).Div(total).Truncate(2)
			}
		}
		for i, amount := range amounts {
			l.Pay(i, amount)
		}
	}
}
