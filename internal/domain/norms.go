package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BaseAmounts is the floor protected amount per living situation
type BaseAmounts struct {
	Single                 decimal.Decimal `yaml:"single" json:"single" validate:"gte=0"`
	SingleParent           decimal.Decimal `yaml:"single_parent" json:"single_parent" validate:"gte=0"`
	CohabitingDualIncome   decimal.Decimal `yaml:"cohabiting_dual_income" json:"cohabiting_dual_income" validate:"gte=0"`
	CohabitingSingleIncome decimal.Decimal `yaml:"cohabiting_single_income" json:"cohabiting_single_income" validate:"gte=0"`
}

// ChildSurcharges is the tiered per-child schedule. Every child after the
// third uses FourthAndBeyond.
type ChildSurcharges struct {
	First           decimal.Decimal `yaml:"first" json:"first" validate:"gte=0"`
	Second          decimal.Decimal `yaml:"second" json:"second" validate:"gte=0"`
	Third           decimal.Decimal `yaml:"third" json:"third" validate:"gte=0"`
	FourthAndBeyond decimal.Decimal `yaml:"fourth_and_beyond" json:"fourth_and_beyond" validate:"gte=0"`
}

// HousingNorms controls the housing-cost correction
type HousingNorms struct {
	Threshold        decimal.Decimal `yaml:"threshold" json:"threshold" validate:"gte=0"`
	CorrectionFactor decimal.Decimal `yaml:"correction_factor" json:"correction_factor" validate:"gte=0,lte=1"`
}

// FixedNorms are the profile-independent corrections
type FixedNorms struct {
	HealthDeductibleMonthly decimal.Decimal `yaml:"health_deductible_monthly" json:"health_deductible_monthly" validate:"gte=0"`
	ReserveAllowance        decimal.Decimal `yaml:"reserve_allowance" json:"reserve_allowance" validate:"gte=0"`
	EmploymentSurcharge     decimal.Decimal `yaml:"employment_surcharge" json:"employment_surcharge" validate:"gte=0"`
}

// CommuteNorms controls the commute cost deduction
type CommuteNorms struct {
	MinimumDistanceKm decimal.Decimal `yaml:"minimum_distance_km" json:"minimum_distance_km" validate:"gte=0"`
	RatePerKm         decimal.Decimal `yaml:"rate_per_km" json:"rate_per_km" validate:"gte=0"`
	WeeksPerMonth     decimal.Decimal `yaml:"weeks_per_month" json:"weeks_per_month" validate:"gt=0"`
}

// StatusThresholds classify repayment capacity
type StatusThresholds struct {
	NotFeasibleBelow decimal.Decimal `yaml:"not_feasible_below" json:"not_feasible_below" validate:"gte=0"`
	MarginalUpTo     decimal.Decimal `yaml:"marginal_up_to" json:"marginal_up_to" validate:"gte=0"`
}

// PayoffNorms parameterize the payoff simulator and the allocation helper
type PayoffNorms struct {
	HorizonMonths         int             `yaml:"horizon_months" json:"horizon_months" validate:"gt=0,lte=1200"`
	Epsilon               decimal.Decimal `yaml:"epsilon" json:"epsilon" validate:"gte=0"`
	DefaultMinimumPayment decimal.Decimal `yaml:"default_minimum_payment" json:"default_minimum_payment" validate:"gte=0"`
	AllocationFloor       decimal.Decimal `yaml:"allocation_floor" json:"allocation_floor" validate:"gte=0"`
}

// NormTable is one revision of the legal and business constants
type NormTable struct {
	Label                    string           `yaml:"label" json:"label" validate:"required"`
	EffectiveFrom            time.Time        `yaml:"effective_from" json:"effective_from" validate:"required"`
	BaseAmounts              BaseAmounts      `yaml:"base_amounts" json:"base_amounts"`
	ChildSurcharges          ChildSurcharges  `yaml:"child_surcharges" json:"child_surcharges"`
	Housing                  HousingNorms     `yaml:"housing" json:"housing"`
	Fixed                    FixedNorms       `yaml:"fixed" json:"fixed"`
	Commute                  CommuteNorms     `yaml:"commute" json:"commute"`
	ChildcareProtectedFactor decimal.Decimal  `yaml:"childcare_protected_factor" json:"childcare_protected_factor" validate:"gte=0,lte=1"`
	IncomeCapFactor          decimal.Decimal  `yaml:"income_cap_factor" json:"income_cap_factor" validate:"gt=0,lte=1"`
	Status                   StatusThresholds `yaml:"status" json:"status"`
	Payoff                   PayoffNorms      `yaml:"payoff" json:"payoff"`
}

// BaseAmount returns the base amount for the living situation. Unknown
// situations use the single-adult amount.
func (n NormTable) BaseAmount(ls LivingSituation) decimal.Decimal {
	switch ls {
	case LivingSingleParent:
		return n.BaseAmounts.SingleParent
	case LivingCohabitingDualIncome:
		return n.BaseAmounts.CohabitingDualIncome
	case LivingCohabitingSingleIncome:
		return n.BaseAmounts.CohabitingSingleIncome
	default:
		return n.BaseAmounts.Single
	}
}

// ChildSurcharge returns the tiered surcharge for n children
func (n NormTable) ChildSurcharge(children int) decimal.Decimal {
	tiers := []decimal.Decimal{n.ChildSurcharges.First, n.ChildSurcharges.Second, n.ChildSurcharges.Third}
	total := decimal.Zero
	for i := 0; i < children && i < len(tiers); i++ {
		total = total.Add(tiers[i])
	}
	if extra := children - len(tiers); extra > 0 {
		total = total.Add(n.ChildSurcharges.FourthAndBeyond.Mul(decimal.NewFromInt(int64(extra))))
	}
	return total
}

// NormHistory is a set of norm tables ordered by EffectiveFrom
type NormHistory []NormTable

// Sorted returns a copy ordered by EffectiveFrom ascending
func (h NormHistory) Sorted() NormHistory {
	out := make(NormHistory, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveFrom.Before(out[j].EffectiveFrom)
	})
	return out
}

// At returns the table in force on the given date: the latest table whose
// EffectiveFrom is not after t. Dates before the first revision get the
// oldest table.
func (h NormHistory) At(t time.Time) (NormTable, bool) {
	if len(h) == 0 {
		return NormTable{}, false
	}
	sorted := h.Sorted()
	chosen := sorted[0]
	for _, table := range sorted {
		if table.EffectiveFrom.After(t) {
			break
		}
		chosen = table
	}
	return chosen, true
}

// Latest returns the most recent table
func (h NormHistory) Latest() (NormTable, bool) {
	if len(h) == 0 {
		return NormTable{}, false
	}
	sorted := h.Sorted()
	return sorted[len(sorted)-1], true
}

// ByLabel finds a table by its label
func (h NormHistory) ByLabel(label string) (NormTable, bool) {
	for _, table := range h {
		if table.Label == label {
			return table, true
		}
	}
	return NormTable{}, false
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultNormHistory returns the built-in norm revisions
func DefaultNormHistory() NormHistory {
	return NormHistory{norms2024(), norms2025()}
}

// DefaultNorms returns the most recent built-in norm table
func DefaultNorms() NormTable {
	table, _ := DefaultNormHistory().Latest()
	return table
}

func defaultPayoffNorms() PayoffNorms {
	return PayoffNorms{
		HorizonMonths:         360,
		Epsilon:               mustDecimal("0.01"),
		DefaultMinimumPayment: mustDecimal("25"),
		AllocationFloor:       mustDecimal("10"),
	}
}

func defaultStatusThresholds() StatusThresholds {
	return StatusThresholds{
		NotFeasibleBelow: mustDecimal("25"),
		MarginalUpTo:     mustDecimal("50"),
	}
}

func norms2024() NormTable {
	return NormTable{
		Label:         "2024",
		EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		BaseAmounts: BaseAmounts{
			Single:                 mustDecimal("1263.00"),
			SingleParent:           mustDecimal("1391.00"),
			CohabitingDualIncome:   mustDecimal("1804.00"),
			CohabitingSingleIncome: mustDecimal("1735.00"),
		},
		ChildSurcharges: ChildSurcharges{
			First:           mustDecimal("337.00"),
			Second:          mustDecimal("273.00"),
			Third:           mustDecimal("245.00"),
			FourthAndBeyond: mustDecimal("215.00"),
		},
		Housing: HousingNorms{
			Threshold:        mustDecimal("879.66"),
			CorrectionFactor: mustDecimal("0.90"),
		},
		Fixed: FixedNorms{
			HealthDeductibleMonthly: mustDecimal("32.08"),
			ReserveAllowance:        mustDecimal("50.00"),
			EmploymentSurcharge:     mustDecimal("163.00"),
		},
		Commute: CommuteNorms{
			MinimumDistanceKm: mustDecimal("10"),
			RatePerKm:         mustDecimal("0.23"),
			WeeksPerMonth:     mustDecimal("4.33"),
		},
		ChildcareProtectedFactor: mustDecimal("0.20"),
		IncomeCapFactor:          mustDecimal("0.95"),
		Status:                   defaultStatusThresholds(),
		Payoff:                   defaultPayoffNorms(),
	}
}

func norms2025() NormTable {
	return NormTable{
		Label:         "2025",
		EffectiveFrom: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		BaseAmounts: BaseAmounts{
			Single:                 mustDecimal("1301.00"),
			SingleParent:           mustDecimal("1433.00"),
			CohabitingDualIncome:   mustDecimal("1858.00"),
			CohabitingSingleIncome: mustDecimal("1787.00"),
		},
		ChildSurcharges: ChildSurcharges{
			First:           mustDecimal("347.00"),
			Second:          mustDecimal("281.00"),
			Third:           mustDecimal("252.00"),
			FourthAndBeyond: mustDecimal("221.00"),
		},
		Housing: HousingNorms{
			Threshold:        mustDecimal("900.07"),
			CorrectionFactor: mustDecimal("0.90"),
		},
		Fixed: FixedNorms{
			HealthDeductibleMonthly: mustDecimal("32.08"),
			ReserveAllowance:        mustDecimal("50.00"),
			EmploymentSurcharge:     mustDecimal("168.00"),
		},
		Commute: CommuteNorms{
			MinimumDistanceKm: mustDecimal("10"),
			RatePerKm:         mustDecimal("0.23"),
			WeeksPerMonth:     mustDecimal("4.33"),
		},
		ChildcareProtectedFactor: mustDecimal("0.20"),
		IncomeCapFactor:          mustDecimal("0.95"),
		Status:                   defaultStatusThresholds(),
		Payoff:                   defaultPayoffNorms(),
	}
}
