package calculation

import (
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	tripsPerDay = decimal.NewFromInt(2)
	months      = decimal.NewFromInt(12)
)

// ProtectedBudgetCalculator computes the protected part of a household's
// income and the repayment capacity left over. It holds no mutable state
// besides its logger and is safe for concurrent use.
type ProtectedBudgetCalculator struct {
	Norms  domain.NormTable
	Logger Logger
}

// NewCalculator creates a calculator for one norm revision
func NewCalculator(norms domain.NormTable) *ProtectedBudgetCalculator {
	return &ProtectedBudgetCalculator{
		Norms:  norms,
		Logger: NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (c *ProtectedBudgetCalculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// Compute returns the protected budget for a profile. It never fails:
// out-of-range fields are normalized before use and the profile passed in
// is not modified.
func (c *ProtectedBudgetCalculator) Compute(profile domain.HouseholdProfile) domain.ProtectedBudgetResult {
	p := profile.Normalized()

	breakdown := domain.BudgetBreakdown{
		BaseAmount:        c.Norms.BaseAmount(p.LivingSituation),
		ChildSurcharge:    c.Norms.ChildSurcharge(p.Children),
		HousingCorrection: c.housingCorrection(p.HousingCost),
		Fixed:             c.fixedCorrections(p.EmploymentStatus),
		Individual:        c.individualCosts(p),
	}

	preCap := breakdown.BaseAmount.
		Add(breakdown.ChildSurcharge).
		Add(breakdown.HousingCorrection).
		Add(breakdown.Fixed.Total).
		Add(breakdown.Individual.Total)

	result := domain.ProtectedBudgetResult{
		ProtectedAmount:     preCap,
		PreCapAmount:        preCap,
		Breakdown:           breakdown,
		NetIncome:           p.NetIncome,
		ExistingObligations: p.ExistingObligations,
		NormsLabel:          c.Norms.Label,
	}

	// The cap is only meaningful against a positive income
	if p.NetIncome.IsPositive() {
		result.CapAmount = p.NetIncome.Mul(c.Norms.IncomeCapFactor)
		if preCap.GreaterThan(result.CapAmount) {
			result.ProtectedAmount = result.CapAmount
			result.CapApplied = true
			c.Logger.Debugf("protected budget %s capped at %s (%s of net income %s)",
				preCap.StringFixed(2), result.CapAmount.StringFixed(2),
				c.Norms.IncomeCapFactor.String(), p.NetIncome.StringFixed(2))
		}
	}

	capacity := p.NetIncome.Sub(result.ProtectedAmount).Sub(p.ExistingObligations)
	if capacity.IsNegative() {
		capacity = decimal.Zero
	}
	result.RepaymentCapacity = capacity
	result.Status = ClassifyCapacity(capacity, c.Norms.Status)

	c.Logger.Debugf("protected budget: base=%s children=%s housing=%s fixed=%s individual=%s total=%s capacity=%s (%s)",
		breakdown.BaseAmount.StringFixed(2), breakdown.ChildSurcharge.StringFixed(2),
		breakdown.HousingCorrection.StringFixed(2), breakdown.Fixed.Total.StringFixed(2),
		breakdown.Individual.Total.StringFixed(2), result.ProtectedAmount.StringFixed(2),
		capacity.StringFixed(2), result.Status)

	return result
}

// ClassifyCapacity maps a repayment capacity to its status. Both thresholds
// are inclusive on the marginal side.
func ClassifyCapacity(capacity decimal.Decimal, t domain.StatusThresholds) domain.CapacityStatus {
	switch {
	case capacity.LessThan(t.NotFeasibleBelow):
		return domain.StatusNotFeasible
	case capacity.LessThanOrEqual(t.MarginalUpTo):
		return domain.StatusMarginal
	default:
		return domain.StatusFeasible
	}
}

// housingCorrection adds a share of the housing cost above the threshold.
// Costs below the threshold never reduce the budget.
func (c *ProtectedBudgetCalculator) housingCorrection(cost decimal.Decimal) decimal.Decimal {
	excess := cost.Sub(c.Norms.Housing.Threshold)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(c.Norms.Housing.CorrectionFactor).Round(2)
}

func (c *ProtectedBudgetCalculator) fixedCorrections(status domain.EmploymentStatus) domain.FixedCorrections {
	fc := domain.FixedCorrections{
		HealthDeductible:    c.Norms.Fixed.HealthDeductibleMonthly,
		ReserveAllowance:    c.Norms.Fixed.ReserveAllowance,
		EmploymentSurcharge: decimal.Zero,
	}
	if status.IsWorking() {
		fc.EmploymentSurcharge = c.Norms.Fixed.EmploymentSurcharge
	}
	fc.Total = fc.HealthDeductible.Add(fc.ReserveAllowance).Add(fc.EmploymentSurcharge)
	return fc
}

func (c *ProtectedBudgetCalculator) individualCosts(p domain.HouseholdProfile) domain.IndividualCosts {
	ic := domain.IndividualCosts{
		Commute:      c.commuteCost(p),
		Alimony:      p.Alimony,
		Childcare:    p.ChildcareCost.Mul(c.Norms.ChildcareProtectedFactor).Round(2),
		MunicipalTax: p.MunicipalTaxAnnual.Div(months).Round(2),
		StudyCosts:   p.StudyCosts,
		UnionDues:    p.UnionDues,
		Medication:   decimal.Zero,
	}

	// The chronic-condition flag gates the whole medication deduction
	if p.ChronicCondition {
		ic.Medication = p.MedicationCost
	}

	ic.Total = ic.Commute.
		Add(ic.Alimony).
		Add(ic.Childcare).
		Add(ic.MunicipalTax).
		Add(ic.StudyCosts).
		Add(ic.UnionDues).
		Add(ic.Medication)
	return ic
}

// commuteCost is distance x 2 x days/week x weeks/month x rate, for working
// people beyond the minimum distance only
func (c *ProtectedBudgetCalculator) commuteCost(p domain.HouseholdProfile) decimal.Decimal {
	if !p.EmploymentStatus.IsWorking() {
		return decimal.Zero
	}
	if !p.CommuteDistanceKm.GreaterThan(c.Norms.Commute.MinimumDistanceKm) {
		return decimal.Zero
	}
	return p.CommuteDistanceKm.
		Mul(tripsPerDay).
		Mul(p.WorkingDaysPerWeek).
		Mul(c.Norms.Commute.WeeksPerMonth).
		Mul(c.Norms.Commute.RatePerKm).
		Round(2)
}
