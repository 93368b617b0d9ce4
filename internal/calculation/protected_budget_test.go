package calculation

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records messages for assertions
type TestLogger struct {
	Messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func (l *TestLogger) record(level, format string, args ...any) {
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, args...))
}

func norms2024(t *testing.T) domain.NormTable {
	t.Helper()
	table, ok := domain.DefaultNormHistory().ByLabel("2024")
	require.True(t, ok)
	return table
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenarioA() domain.HouseholdProfile {
	return domain.HouseholdProfile{
		LivingSituation:  domain.LivingSingle,
		Children:         0,
		HousingCost:      dec("700"),
		EmploymentStatus: domain.EmploymentUnemployed,
		NetIncome:        dec("1500"),
	}
}

func TestCalculator_SetLogger(t *testing.T) {
	calc := NewCalculator(domain.DefaultNorms())
	assert.IsType(t, NopLogger{}, calc.Logger, "Should default to no-op logger")

	customLogger := &TestLogger{}
	calc.SetLogger(customLogger)
	assert.Equal(t, customLogger, calc.Logger, "Should set custom logger")

	calc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, calc.Logger, "Should be no-op logger")
}

func TestCompute_ScenarioA_SingleUnemployed(t *testing.T) {
	norms := norms2024(t)
	calc := NewCalculator(norms)

	result := calc.Compute(scenarioA())

	expected := norms.BaseAmounts.Single.
		Add(norms.Fixed.HealthDeductibleMonthly).
		Add(norms.Fixed.ReserveAllowance)
	assert.True(t, result.ProtectedAmount.Equal(expected), "Expected %s, got %s", expected, result.ProtectedAmount)
	assert.True(t, result.ProtectedAmount.Equal(dec("1345.08")))
	assert.True(t, result.Breakdown.HousingCorrection.IsZero(), "housing below threshold adds nothing")
	assert.True(t, result.Breakdown.Fixed.EmploymentSurcharge.IsZero(), "no surcharge when unemployed")
	assert.False(t, result.CapApplied)
	assert.True(t, result.RepaymentCapacity.Equal(dec("1500").Sub(expected)))
	assert.True(t, result.RepaymentCapacity.Equal(dec("154.92")))
	assert.Equal(t, domain.StatusFeasible, result.Status)
	assert.Equal(t, "2024", result.NormsLabel)
}

func TestCompute_ScenarioB_TwoChildren(t *testing.T) {
	norms := norms2024(t)
	calc := NewCalculator(norms)
	childTiers := norms.ChildSurcharges.First.Add(norms.ChildSurcharges.Second)

	a := calc.Compute(scenarioA())
	profileB := scenarioA()
	profileB.Children = 2
	b := calc.Compute(profileB)

	assert.True(t, b.Breakdown.ChildSurcharge.Equal(childTiers))
	assert.True(t, b.PreCapAmount.Sub(a.PreCapAmount).Equal(childTiers))

	// At 1500 net the larger budget runs into the income cap
	assert.True(t, b.CapApplied)
	assert.True(t, b.ProtectedAmount.Equal(dec("1425")))

	// With enough income the protected amount moves by exactly the tiers
	richA := scenarioA()
	richA.NetIncome = dec("4000")
	richB := profileB
	richB.NetIncome = dec("4000")
	delta := calc.Compute(richB).ProtectedAmount.Sub(calc.Compute(richA).ProtectedAmount)
	assert.True(t, delta.Equal(childTiers), "Expected %s, got %s", childTiers, delta)
}

func TestCompute_ChildTierSchedule(t *testing.T) {
	norms := norms2024(t)
	calc := NewCalculator(norms)
	c := norms.ChildSurcharges

	expected := []decimal.Decimal{
		decimal.Zero,
		c.First,
		c.First.Add(c.Second),
		c.First.Add(c.Second).Add(c.Third),
		c.First.Add(c.Second).Add(c.Third).Add(c.FourthAndBeyond),
		c.First.Add(c.Second).Add(c.Third).Add(c.FourthAndBeyond.Mul(decimal.NewFromInt(2))),
	}
	for n, want := range expected {
		p := scenarioA()
		p.Children = n
		got := calc.Compute(p).Breakdown.ChildSurcharge
		assert.True(t, got.Equal(want), "n=%d: expected %s, got %s", n, want, got)
	}
}

func TestCompute_HousingCorrection(t *testing.T) {
	calc := NewCalculator(norms2024(t))

	p := scenarioA()
	p.HousingCost = dec("1000")
	result := calc.Compute(p)

	// (1000 - 879.66) * 0.90 = 108.306
	assert.True(t, result.Breakdown.HousingCorrection.Equal(dec("108.31")), "got %s", result.Breakdown.HousingCorrection)

	p.HousingCost = dec("879.66")
	assert.True(t, calc.Compute(p).Breakdown.HousingCorrection.IsZero(), "threshold itself adds nothing")
}

func TestCompute_EmploymentAndCommute(t *testing.T) {
	norms := norms2024(t)
	calc := NewCalculator(norms)

	tests := []struct {
		name              string
		status            domain.EmploymentStatus
		distance          string
		expectedCommute   string
		expectedSurcharge decimal.Decimal
	}{
		{"permanent beyond minimum", domain.EmploymentPermanent, "25", "248.98", norms.Fixed.EmploymentSurcharge},
		{"temporary at minimum", domain.EmploymentTemporary, "10", "0", norms.Fixed.EmploymentSurcharge},
		{"self employed beyond minimum", domain.EmploymentSelf, "11", "109.55", norms.Fixed.EmploymentSurcharge},
		{"student never commutes", domain.EmploymentStudent, "25", "0", decimal.Zero},
		{"unemployed never commutes", domain.EmploymentUnemployed, "25", "0", decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioA()
			p.EmploymentStatus = tt.status
			p.CommuteDistanceKm = dec(tt.distance)
			p.WorkingDaysPerWeek = dec("5")
			p.NetIncome = dec("5000")

			result := calc.Compute(p)
			assert.True(t, result.Breakdown.Individual.Commute.Equal(dec(tt.expectedCommute)),
				"Expected commute %s, got %s", tt.expectedCommute, result.Breakdown.Individual.Commute)
			assert.True(t, result.Breakdown.Fixed.EmploymentSurcharge.Equal(tt.expectedSurcharge))
		})
	}
}

func TestCompute_IndividualCosts(t *testing.T) {
	calc := NewCalculator(norms2024(t))

	p := scenarioA()
	p.NetIncome = dec("6000")
	p.Alimony = dec("150")
	p.ChildcareCost = dec("500")
	p.MunicipalTaxAnnual = dec("600")
	p.StudyCosts = dec("40")
	p.UnionDues = dec("15.50")
	p.ChronicCondition = true
	p.MedicationCost = dec("35")

	ic := calc.Compute(p).Breakdown.Individual

	assert.True(t, ic.Alimony.Equal(dec("150")))
	assert.True(t, ic.Childcare.Equal(dec("100")), "only the non-reimbursed share is protected")
	assert.True(t, ic.MunicipalTax.Equal(dec("50")))
	assert.True(t, ic.StudyCosts.Equal(dec("40")))
	assert.True(t, ic.UnionDues.Equal(dec("15.50")))
	assert.True(t, ic.Medication.Equal(dec("35")))
	assert.True(t, ic.Total.Equal(dec("390.50")), "got %s", ic.Total)
}

func TestCompute_MedicationRequiresChronicCondition(t *testing.T) {
	calc := NewCalculator(norms2024(t))

	withCost := scenarioA()
	withCost.MedicationCost = dec("500")
	withCost.ChronicCondition = false

	withoutCost := scenarioA()

	assert.True(t, calc.Compute(withCost).ProtectedAmount.Equal(calc.Compute(withoutCost).ProtectedAmount))

	// The same rule holds on the free-form boundary
	fromRecord := domain.ParseProfile(map[string]any{
		"woonsituatie":     "alleenstaand",
		"woonlasten":       700,
		"werksituatie":     "werkloos",
		"nettoInkomen":     1500,
		"medicijnkosten":   500,
		"chronischeZiekte": false,
	})
	assert.True(t, calc.Compute(fromRecord).ProtectedAmount.Equal(calc.Compute(withoutCost).ProtectedAmount))
}

func TestCompute_CapNotEvaluatedWithoutIncome(t *testing.T) {
	calc := NewCalculator(norms2024(t))

	p := scenarioA()
	p.NetIncome = decimal.Zero
	result := calc.Compute(p)

	assert.False(t, result.CapApplied)
	assert.True(t, result.ProtectedAmount.Equal(result.PreCapAmount))
	assert.True(t, result.CapAmount.IsZero())
	assert.True(t, result.RepaymentCapacity.IsZero())
	assert.Equal(t, domain.StatusNotFeasible, result.Status)

	p.NetIncome = dec("-300")
	negative := calc.Compute(p)
	assert.False(t, negative.CapApplied)
	assert.True(t, negative.NetIncome.IsZero(), "negative income is treated as zero")
}

func TestCompute_CapLogsDebug(t *testing.T) {
	calc := NewCalculator(norms2024(t))
	logger := &TestLogger{}
	calc.SetLogger(logger)

	p := scenarioA()
	p.NetIncome = dec("1000")
	result := calc.Compute(p)

	require.True(t, result.CapApplied)
	assert.True(t, result.ProtectedAmount.Equal(dec("950")))
	assert.NotEmpty(t, logger.Messages)
	assert.Contains(t, logger.Messages[0], "capped at 950.00")
}

func TestCompute_ObligationsReduceCapacity(t *testing.T) {
	calc := NewCalculator(norms2024(t))

	p := scenarioA()
	p.ExistingObligations = dec("100")
	result := calc.Compute(p)
	assert.True(t, result.RepaymentCapacity.Equal(dec("54.92")))
	assert.Equal(t, domain.StatusFeasible, result.Status)

	p.ExistingObligations = dec("500")
	result = calc.Compute(p)
	assert.True(t, result.RepaymentCapacity.IsZero(), "capacity never goes negative")
}

func TestClassifyCapacity(t *testing.T) {
	thresholds := domain.DefaultNorms().Status
	tests := []struct {
		capacity string
		expected domain.CapacityStatus
	}{
		{"0", domain.StatusNotFeasible},
		{"24.99", domain.StatusNotFeasible},
		{"25", domain.StatusMarginal},
		{"50", domain.StatusMarginal},
		{"50.01", domain.StatusFeasible},
		{"1000", domain.StatusFeasible},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyCapacity(dec(tt.capacity), thresholds), tt.capacity)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	calc := NewCalculator(norms2024(t))
	p := domain.HouseholdProfile{Children: -2, NetIncome: dec("-5"), LivingSituation: "onbekend"}
	snapshot := p

	calc.Compute(p)
	assert.Equal(t, snapshot, p)
}

func TestCompute_Properties(t *testing.T) {
	calc := NewCalculator(domain.DefaultNorms())
	rng := rand.New(rand.NewSource(42))

	situations := []domain.LivingSituation{
		domain.LivingSingle, domain.LivingSingleParent,
		domain.LivingCohabitingDualIncome, domain.LivingCohabitingSingleIncome,
	}
	statuses := []domain.EmploymentStatus{
		domain.EmploymentPermanent, domain.EmploymentTemporary, domain.EmploymentSelf,
		domain.EmploymentUnemployed, domain.EmploymentStudent, domain.EmploymentNone,
	}
	amount := func(max int) decimal.Decimal {
		return decimal.NewFromInt(int64(rng.Intn(max*100) - max*10)).Div(decimal.NewFromInt(100))
	}

	for i := 0; i < 500; i++ {
		p := domain.HouseholdProfile{
			LivingSituation:     situations[rng.Intn(len(situations))],
			Children:            rng.Intn(7) - 1,
			HousingCost:         amount(2000),
			EmploymentStatus:    statuses[rng.Intn(len(statuses))],
			CommuteDistanceKm:   amount(80),
			WorkingDaysPerWeek:  decimal.NewFromInt(int64(rng.Intn(9))),
			ChronicCondition:    rng.Intn(2) == 0,
			MedicationCost:      amount(300),
			Alimony:             amount(500),
			ChildcareCost:       amount(1500),
			MunicipalTaxAnnual:  amount(1200),
			NetIncome:           amount(5000),
			ExistingObligations: amount(600),
		}

		result := calc.Compute(p)

		assert.False(t, result.RepaymentCapacity.IsNegative(), "case %d: negative capacity", i)
		if result.NetIncome.IsPositive() {
			capAmount := result.NetIncome.Mul(dec("0.95"))
			assert.True(t, result.ProtectedAmount.LessThanOrEqual(decimal.Max(result.PreCapAmount, capAmount)), "case %d", i)
			if result.CapApplied {
				assert.True(t, result.ProtectedAmount.Equal(capAmount), "case %d: cap must be exact", i)
			}
		} else {
			assert.False(t, result.CapApplied, "case %d: cap applied without income", i)
			assert.True(t, result.ProtectedAmount.Equal(result.PreCapAmount), "case %d", i)
		}
	}
}

func TestCompute_HugeChildCountIsCheap(t *testing.T) {
	norms := domain.DefaultNorms()
	calc := NewCalculator(norms)
	p := domain.ParseProfile(map[string]any{"children": "2147483647", "net_income": 2000})
	require.Equal(t, math.MaxInt32, p.Children)

	start := time.Now()
	result := calc.Compute(p)
	assert.Less(t, time.Since(start), time.Second)

	c := norms.ChildSurcharges
	expected := c.First.Add(c.Second).Add(c.Third).Add(c.FourthAndBeyond.Mul(decimal.NewFromInt(math.MaxInt32 - 3)))
	assert.True(t, result.Breakdown.ChildSurcharge.Equal(expected), "got %s", result.Breakdown.ChildSurcharge)
	assert.True(t, result.CapApplied)
	assert.True(t, result.RepaymentCapacity.Equal(dec("100")))
}
