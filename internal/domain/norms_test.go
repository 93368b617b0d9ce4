package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormTable_ChildSurchargeTiers(t *testing.T) {
	n := DefaultNorms()
	c1, c2, c3, c4 := n.ChildSurcharges.First, n.ChildSurcharges.Second, n.ChildSurcharges.Third, n.ChildSurcharges.FourthAndBeyond

	require.True(t, c1.GreaterThan(c2) && c2.GreaterThan(c3) && c3.GreaterThan(c4), "tiers decrease")

	tests := []struct {
		children int
		expected decimal.Decimal
	}{
		{0, decimal.Zero},
		{1, c1},
		{2, c1.Add(c2)},
		{3, c1.Add(c2).Add(c3)},
		{4, c1.Add(c2).Add(c3).Add(c4)},
		{5, c1.Add(c2).Add(c3).Add(c4.Mul(decimal.NewFromInt(2)))},
		{-1, decimal.Zero},
		{1000003, c1.Add(c2).Add(c3).Add(c4.Mul(decimal.NewFromInt(1000000)))},
	}
	for _, tt := range tests {
		got := n.ChildSurcharge(tt.children)
		assert.True(t, got.Equal(tt.expected), "n=%d: expected %s, got %s", tt.children, tt.expected, got)
	}
}

func TestNormTable_BaseAmount(t *testing.T) {
	n := DefaultNorms()
	assert.True(t, n.BaseAmount(LivingSingle).Equal(n.BaseAmounts.Single))
	assert.True(t, n.BaseAmount(LivingSingleParent).Equal(n.BaseAmounts.SingleParent))
	assert.True(t, n.BaseAmount(LivingCohabitingDualIncome).Equal(n.BaseAmounts.CohabitingDualIncome))
	assert.True(t, n.BaseAmount(LivingCohabitingSingleIncome).Equal(n.BaseAmounts.CohabitingSingleIncome))
	assert.True(t, n.BaseAmount("unknown").Equal(n.BaseAmounts.Single))
}

func TestNormHistory_At(t *testing.T) {
	h := DefaultNormHistory()

	table, ok := h.At(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024", table.Label)

	table, ok = h.At(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2025", table.Label, "a table applies from its effective date")

	table, ok = h.At(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024", table.Label, "dates before the first revision use the oldest")

	_, ok = NormHistory{}.At(time.Now())
	assert.False(t, ok)
}

func TestDefaultNorms_PayoffConstants(t *testing.T) {
	n := DefaultNorms()
	assert.Equal(t, 360, n.Payoff.HorizonMonths)
	assert.True(t, n.Payoff.Epsilon.Equal(decimal.RequireFromString("0.01")))
	assert.True(t, n.Payoff.DefaultMinimumPayment.Equal(decimal.NewFromInt(25)))
	assert.True(t, n.Payoff.AllocationFloor.Equal(decimal.NewFromInt(10)))
	assert.True(t, n.IncomeCapFactor.Equal(decimal.RequireFromString("0.95")))
}
