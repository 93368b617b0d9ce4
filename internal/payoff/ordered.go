package payoff

import (
	"sort"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// orderedPolicy pays every minimum, then sends whatever is left to the first
// open debt of a fixed priority order. The order is computed once from the
// starting position and is never re-sorted while the simulation runs.
//
// Leftover budget funds a single debt per month. If that debt is cleared
// with money to spare, the rest of the month's budget is not passed on to
// the next debt in line.
type orderedPolicy struct {
	name domain.PolicyName
	less func(l *Ledger, a, b int) bool
}

func (p *orderedPolicy) Name() domain.PolicyName { return p.name }

func (p *orderedPolicy) Prepare(l *Ledger) MonthlyPayment {
	order := PriorityOrder(l, p.less)

	return func(l *Ledger, capacity decimal.Decimal) {
		pool := capacity

		// Minimums first, in priority order, so a short month funds the
		// focus debt before the rest
		for _, i := range order {
			if !pool.IsPositive() {
				break
			}
			if !l.IsOpen(i) {
				continue
			}
			pool = pool.Sub(l.Pay(i, decimal.Min(l.Minimum(i), pool)))
		}

		for _, i := range order {
			if l.IsOpen(i) {
				l.Pay(i, pool)
				break
			}
		}
	}
}

// PriorityOrder returns ledger indices sorted by less, keeping input order
// for ties
func PriorityOrder(l *Ledger, less func(l *Ledger, a, b int) bool) []int {
	order := make([]int, l.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return less(l, order[x], order[y])
	})
	return order
}

// NewSnowballPolicy focuses on the smallest starting balance first
func NewSnowballPolicy() Policy {
	return &orderedPolicy{
		name: domain.PolicySnowball,
		less: func(l *Ledger, a, b int) bool {
			return l.StartingBalance(a).LessThan(l.StartingBalance(b))
		},
	}
}

// NewAvalanchePolicy focuses on the highest interest rate first
func NewAvalanchePolicy() Policy {
	return &orderedPolicy{
		name: domain.PolicyAvalanche,
		less: func(l *Ledger, a, b int) bool {
			return l.Debt(a).InterestRate.GreaterThan(l.Debt(b).InterestRate)
		},
	}
}
