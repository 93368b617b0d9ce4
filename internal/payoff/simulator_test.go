package payoff

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Debugf(string, ...any) {}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestSimulator() *Simulator {
	return NewSimulator(domain.DefaultNorms().Payoff)
}

func debt(id string, principal, rate, minimum string) domain.Debt {
	return domain.Debt{
		ID:             id,
		Creditor:       "creditor " + id,
		Principal:      dec(principal),
		InterestRate:   dec(rate),
		MonthlyPayment: dec(minimum),
	}
}

// scenarioC has three debts where size order and rate order disagree
func scenarioC() []domain.Debt {
	return []domain.Debt{
		debt("small", "100", "5", "0"),
		debt("expensive", "500", "20", "0"),
		debt("large", "2000", "10", "0"),
	}
}

func payoffMonthsOf(r domain.PayoffSimulationResult) []int {
	out := make([]int, len(r.Schedule))
	for i, s := range r.Schedule {
		out[i] = s.PayoffMonth
	}
	return out
}

func TestSimulate_ScenarioC(t *testing.T) {
	set := newTestSimulator().Simulate(scenarioC(), dec("200"))

	tests := []struct {
		policy   domain.PolicyName
		months   int
		interest string
		paid     string
		payoffs  []int
	}{
		{domain.PolicySnowball, 15, "184.71", "2784.71", []int{1, 4, 15}},
		{domain.PolicyAvalanche, 15, "180.35", "2780.35", []int{5, 4, 15}},
		{domain.PolicyProportional, 14, "195.41", "2795.41", []int{14, 14, 14}},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			result, ok := set.Result(tt.policy)
			require.True(t, ok)

			assert.Equal(t, tt.policy, result.Policy)
			assert.Equal(t, tt.months, result.Months)
			assert.True(t, result.TotalInterest.Equal(dec(tt.interest)), "Expected interest %s, got %s", tt.interest, result.TotalInterest)
			assert.True(t, result.TotalPaid.Equal(dec(tt.paid)), "Expected paid %s, got %s", tt.paid, result.TotalPaid)
			assert.Equal(t, tt.payoffs, payoffMonthsOf(result))
			assert.False(t, result.HorizonReached)
			assert.True(t, result.RemainingBalance.IsZero())
		})
	}

	assert.True(t, set.Avalanche.TotalInterest.LessThanOrEqual(set.Snowball.TotalInterest),
		"avalanche should not cost more interest than snowball here")
}

func TestSimulate_ScheduleDescribesInputDebts(t *testing.T) {
	result := newTestSimulator().Run(NewSnowballPolicy(), scenarioC(), dec("200"))

	require.Len(t, result.Schedule, 3)
	first := result.Schedule[0]
	assert.Equal(t, "small", first.DebtID)
	assert.Equal(t, "creditor small", first.Creditor)
	assert.True(t, first.StartingBalance.Equal(dec("100")))
	assert.True(t, first.InterestRate.Equal(dec("5")))
	assert.True(t, first.MinimumPayment.Equal(dec("25")), "missing minimum uses the default floor")

	interest := decimal.Zero
	for _, s := range result.Schedule {
		interest = interest.Add(s.InterestAccrued)
	}
	// Per-debt figures are rounded separately, so they may drift from the
	// total by a cent per debt
	drift := interest.Sub(result.TotalInterest).Abs()
	assert.True(t, drift.LessThanOrEqual(dec("0.03")), "schedule sums to %s, total %s", interest, result.TotalInterest)
}

func TestSimulate_EmptyAndClosedDebts(t *testing.T) {
	sim := newTestSimulator()

	closed := []domain.Debt{
		{ID: "a", Principal: dec("100"), AmountPaid: dec("100")},
		{ID: "b", Principal: dec("50"), AmountPaid: dec("80")},
	}

	for _, debts := range [][]domain.Debt{nil, closed} {
		set := sim.Simulate(debts, dec("200"))
		for _, r := range set.Results() {
			assert.Equal(t, 0, r.Months)
			assert.True(t, r.TotalInterest.IsZero())
			assert.Empty(t, r.Schedule)
			assert.False(t, r.HorizonReached)
		}
	}
}

func TestSimulate_ClosedDebtsAreFiltered(t *testing.T) {
	debts := append(scenarioC(), domain.Debt{ID: "done", Principal: dec("300"), AmountPaid: dec("300"), InterestRate: dec("50")})

	with := newTestSimulator().Simulate(debts, dec("200"))
	without := newTestSimulator().Simulate(scenarioC(), dec("200"))

	assert.Equal(t, without.Snowball.Months, with.Snowball.Months)
	assert.True(t, without.Avalanche.TotalInterest.Equal(with.Avalanche.TotalInterest))
	assert.Len(t, with.Proportional.Schedule, 3)
}

func TestSimulate_HorizonReached(t *testing.T) {
	sim := newTestSimulator()
	logger := &recordingLogger{}
	sim.SetLogger(logger)

	// 30% on 10000 accrues 250 a month, more than the capacity
	debts := []domain.Debt{debt("loan", "10000", "30", "0")}
	set := sim.Simulate(debts, dec("100"))

	for _, r := range set.Results() {
		assert.Equal(t, 360, r.Months, string(r.Policy))
		assert.True(t, r.HorizonReached, string(r.Policy))
		assert.True(t, r.RemainingBalance.GreaterThan(dec("10000")))
		assert.Equal(t, 0, r.Schedule[0].PayoffMonth)
	}
	assert.Len(t, logger.warnings, 3)
	assert.Contains(t, logger.warnings[0], "after 360 months")
}

func TestSimulate_InterestCompoundsAtFullPrecision(t *testing.T) {
	norms := domain.DefaultNorms().Payoff
	norms.HorizonMonths = 3
	debts := []domain.Debt{debt("a", "1000", "1", "0")}

	// 0.8333... a month; rounding each month to 0.83 would report 2.49
	result := NewSimulator(norms).Run(NewSnowballPolicy(), debts, decimal.Zero)

	assert.Equal(t, 3, result.Months)
	assert.True(t, result.TotalInterest.Equal(dec("2.50")), "got %s", result.TotalInterest)
	assert.True(t, result.Schedule[0].InterestAccrued.Equal(dec("2.50")))
	assert.True(t, result.RemainingBalance.Equal(dec("1002.50")))
}

func TestSimulate_ZeroCapacity(t *testing.T) {
	debts := []domain.Debt{debt("a", "100", "0", "0")}
	set := newTestSimulator().Simulate(debts, decimal.Zero)

	for _, r := range set.Results() {
		assert.Equal(t, 360, r.Months)
		assert.True(t, r.HorizonReached)
		assert.True(t, r.TotalInterest.IsZero())
		assert.True(t, r.TotalPaid.IsZero())
	}

	negative := newTestSimulator().Simulate(debts, dec("-50"))
	assert.True(t, negative.Capacity.IsZero())
	assert.True(t, negative.Snowball.TotalPaid.IsZero())
}

func TestSimulate_SingleDebtPoliciesAgree(t *testing.T) {
	debts := []domain.Debt{debt("only", "1000", "12", "25")}
	set := newTestSimulator().Simulate(debts, dec("100"))

	assert.Equal(t, set.Snowball.Months, set.Avalanche.Months)
	assert.True(t, set.Snowball.TotalInterest.Equal(set.Avalanche.TotalInterest))
	assert.Equal(t, set.Snowball.Schedule, set.Avalanche.Schedule)

	assert.Equal(t, 11, set.Snowball.Months)
	assert.True(t, set.Snowball.TotalInterest.Equal(dec("58.98")), "got %s", set.Snowball.TotalInterest)
}

func TestSimulate_LeftoverDoesNotCascade(t *testing.T) {
	// Month 1: minimums 10 + 10, then the leftover 80 goes to the focus
	// debt, which only needs 30. The other 50 is not passed to debt b.
	debts := []domain.Debt{
		debt("a", "40", "0", "10"),
		debt("b", "1000", "0", "10"),
	}
	result := newTestSimulator().Run(NewSnowballPolicy(), debts, dec("100"))

	require.Len(t, result.Schedule, 2)
	assert.Equal(t, 1, result.Schedule[0].PayoffMonth)

	// After month 1, b has 990 left and receives the full 100 from month 2 on
	assert.Equal(t, 11, result.Months)
	assert.True(t, result.TotalPaid.Equal(dec("1040")))
}

func TestSimulate_MinimumsCappedByPool(t *testing.T) {
	// Capacity below the sum of minimums: the focus debt is funded first
	debts := []domain.Debt{
		debt("big", "500", "0", "30"),
		debt("small", "60", "0", "30"),
	}
	result := newTestSimulator().Run(NewSnowballPolicy(), debts, dec("40"))

	// The small debt's minimum is covered first; big only gets what is left
	assert.Equal(t, 2, result.Schedule[1].PayoffMonth)
	assert.False(t, result.HorizonReached)
}

func TestSimulate_StaticOrder(t *testing.T) {
	debts := []domain.Debt{
		debt("a", "300", "0", "25"),
		debt("b", "310", "0", "25"),
	}
	less := NewSnowballPolicy().(*orderedPolicy).less
	l := newLedger(domain.OpenDebts(debts), domain.DefaultNorms().Payoff)
	require.Equal(t, []int{0, 1}, PriorityOrder(l, less))

	// b is now far smaller than a, but the order follows starting balances
	l.Pay(1, dec("300"))
	assert.Equal(t, []int{0, 1}, PriorityOrder(l, less))

	result := newTestSimulator().Run(NewSnowballPolicy(), debts, dec("100"))
	assert.Less(t, result.Schedule[0].PayoffMonth, result.Schedule[1].PayoffMonth)
}

func TestPriorityOrder_StableTies(t *testing.T) {
	debts := []domain.Debt{
		debt("first", "100", "10", "0"),
		debt("second", "100", "10", "0"),
		debt("third", "50", "20", "0"),
	}
	l := newLedger(debts, domain.DefaultNorms().Payoff)

	assert.Equal(t, []int{2, 0, 1}, PriorityOrder(l, NewSnowballPolicy().(*orderedPolicy).less))
	assert.Equal(t, []int{2, 0, 1}, PriorityOrder(l, NewAvalanchePolicy().(*orderedPolicy).less))
}

func TestSimulate_ProportionalNeverOverpays(t *testing.T) {
	debts := []domain.Debt{
		debt("a", "33.33", "0", "0"),
		debt("b", "66.67", "0", "0"),
	}
	result := newTestSimulator().Run(NewProportionalPolicy(), debts, dec("1000"))

	assert.Equal(t, 1, result.Months)
	assert.True(t, result.TotalPaid.Equal(dec("100")))
	for _, s := range result.Schedule {
		assert.True(t, s.RemainingBalance.IsZero())
	}
}

func TestSimulate_Properties(t *testing.T) {
	sim := newTestSimulator()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 60; i++ {
		n := rng.Intn(5)
		debts := make([]domain.Debt, n)
		for j := range debts {
			debts[j] = domain.Debt{
				ID:             fmt.Sprintf("d%d", j),
				Principal:      decimal.NewFromInt(int64(rng.Intn(8000))),
				AmountPaid:     decimal.NewFromInt(int64(rng.Intn(1000))),
				InterestRate:   decimal.NewFromInt(int64(rng.Intn(25))),
				MonthlyPayment: decimal.NewFromInt(int64(rng.Intn(60))),
			}
		}
		capacity := decimal.NewFromInt(int64(rng.Intn(600)))

		set := sim.Simulate(debts, capacity)
		for _, r := range set.Results() {
			assert.LessOrEqual(t, r.Months, 360, "case %d %s", i, r.Policy)
			assert.False(t, r.TotalInterest.IsNegative(), "case %d %s", i, r.Policy)
			assert.False(t, r.RemainingBalance.IsNegative(), "case %d %s", i, r.Policy)
			if !r.HorizonReached {
				assert.True(t, r.RemainingBalance.LessThanOrEqual(dec("0.01").Mul(decimal.NewFromInt(int64(n)))), "case %d %s", i, r.Policy)
			}
			// Nothing is paid beyond capacity in any month
			limit := capacity.Mul(decimal.NewFromInt(int64(r.Months)))
			assert.True(t, r.TotalPaid.LessThanOrEqual(limit), "case %d %s", i, r.Policy)
		}
	}
}
