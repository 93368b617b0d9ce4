package payoff

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// annual percentage rate / 1200 = monthly fraction
var rateDivisor = decimal.NewFromInt(1200)

// Ledger tracks the running balances of one simulation. Debts keep their
// input positions; policies address them by index.
type Ledger struct {
	debts         []domain.Debt
	starting      []decimal.Decimal
	balances      []decimal.Decimal
	minimums      []decimal.Decimal
	interest      []decimal.Decimal
	payoffAt      []int
	epsilon       decimal.Decimal
	paid          decimal.Decimal
	totalInterest decimal.Decimal
}

func newLedger(debts []domain.Debt, norms domain.PayoffNorms) *Ledger {
	l := &Ledger{
		debts:         debts,
		starting:      make([]decimal.Decimal, len(debts)),
		balances:      make([]decimal.Decimal, len(debts)),
		minimums:      make([]decimal.Decimal, len(debts)),
		interest:      make([]decimal.Decimal, len(debts)),
		payoffAt:      make([]int, len(debts)),
		epsilon:       norms.Epsilon,
		paid:          decimal.Zero,
		totalInterest: decimal.Zero,
	}
	for i, d := range debts {
		l.starting[i] = d.RemainingBalance()
		l.balances[i] = l.starting[i]
		l.minimums[i] = d.MinimumPayment(norms.DefaultMinimumPayment)
		l.interest[i] = decimal.Zero
	}
	return l
}

// Len is the number of debts in the ledger
func (l *Ledger) Len() int { return len(l.debts) }

// Debt returns the input record at position i
func (l *Ledger) Debt(i int) domain.Debt { return l.debts[i] }

// StartingBalance is the balance before month one
func (l *Ledger) StartingBalance(i int) decimal.Decimal { return l.starting[i] }

// Balance is the current balance of debt i
func (l *Ledger) Balance(i int) decimal.Decimal { return l.balances[i] }

// Minimum is the monthly minimum of debt i
func (l *Ledger) Minimum(i int) decimal.Decimal { return l.minimums[i] }

// IsOpen reports whether debt i still has a positive balance
func (l *Ledger) IsOpen(i int) bool { return l.balances[i].IsPositive() }

// TotalBalance sums the current balances
func (l *Ledger) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, b := range l.balances {
		total = total.Add(b)
	}
	return total
}

// Pay reduces debt i by amount, never below zero, and returns what was
// actually applied
func (l *Ledger) Pay(i int, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !l.IsOpen(i) {
		return decimal.Zero
	}
	applied := decimal.Min(amount, l.balances[i])
	l.balances[i] = l.balances[i].Sub(applied)
	l.paid = l.paid.Add(applied)
	return applied
}

// accrue adds one month of interest to every open debt. Interest is kept at
// full precision; only reported figures are rounded.
func (l *Ledger) accrue() {
	for i := range l.balances {
		if !l.IsOpen(i) {
			continue
		}
		charge := l.balances[i].Mul(l.debts[i].InterestRate).Div(rateDivisor)
		if !charge.IsPositive() {
			continue
		}
		l.balances[i] = l.balances[i].Add(charge)
		l.interest[i] = l.interest[i].Add(charge)
		l.totalInterest = l.totalInterest.Add(charge)
	}
}

// settled reports whether every balance is within epsilon of zero
func (l *Ledger) settled() bool {
	for _, b := range l.balances {
		if b.GreaterThan(l.epsilon) {
			return false
		}
	}
	return true
}

func (l *Ledger) recordPayoffs(month int) {
	for i, b := range l.balances {
		if l.payoffAt[i] == 0 && b.LessThanOrEqual(l.epsilon) {
			l.payoffAt[i] = month
		}
	}
}

func (l *Ledger) schedule() []domain.DebtSchedule {
	out := make([]domain.DebtSchedule, len(l.debts))
	for i, d := range l.debts {
		out[i] = domain.DebtSchedule{
			DebtID:           d.ID,
			Creditor:         d.Label(),
			StartingBalance:  l.starting[i],
			InterestRate:     d.InterestRate,
			MinimumPayment:   l.minimums[i],
			PayoffMonth:      l.payoffAt[i],
			InterestAccrued:  l.interest[i].Round(2),
			RemainingBalance: l.balances[i].Round(2),
		}
	}
	return out
}
