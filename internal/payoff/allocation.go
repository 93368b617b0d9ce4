package payoff

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// Allocate proposes a single month's distribution of capacity over the
// creditors, in proportion to each debt's remaining balance. The allocation
// floor is only applied when capacity covers the floor for every open debt
// at once. Closed debts are listed with zero amounts.
func (s *Simulator) Allocate(debts []domain.Debt, capacity decimal.Decimal) domain.AllocationProposal {
	capacity = nonNegative(capacity)
	floor := nonNegative(s.Norms.AllocationFloor)

	proposal := domain.AllocationProposal{
		Capacity:    capacity,
		TotalDebt:   domain.TotalRemaining(debts),
		TotalAmount: decimal.Zero,
		Entries:     make([]domain.AllocationEntry, 0, len(debts)),
	}

	openCount := int64(len(domain.OpenDebts(debts)))
	proposal.FloorApplied = floor.IsPositive() && openCount > 0 &&
		capacity.GreaterThanOrEqual(floor.Mul(decimal.NewFromInt(openCount)))

	for _, d := range debts {
		balance := d.RemainingBalance()
		entry := domain.AllocationEntry{
			DebtID:        d.ID,
			Creditor:      d.Label(),
			Balance:       balance,
			Share:         decimal.Zero,
			MonthlyAmount: decimal.Zero,
		}

		if balance.IsPositive() && proposal.TotalDebt.IsPositive() {
			entry.Share = balance.Div(proposal.TotalDebt).Round(4)
			entry.MonthlyAmount = capacity.Mul(balance).Div(proposal.TotalDebt).Truncate(2)
			if proposal.FloorApplied && entry.MonthlyAmount.LessThan(floor) {
				entry.MonthlyAmount = floor
			}
		}
		entry.PayoffMonths = payoffMonths(balance, entry.MonthlyAmount)

		proposal.TotalAmount = proposal.TotalAmount.Add(entry.MonthlyAmount)
		proposal.Entries = append(proposal.Entries, entry)
	}

	return proposal
}

// payoffMonths is ceil(balance / amount), or zero when nothing is paid
func payoffMonths(balance, amount decimal.Decimal) int {
	if !amount.IsPositive() || !balance.IsPositive() {
		return 0
	}
	return int(balance.Div(amount).Ceil().IntPart())
}
