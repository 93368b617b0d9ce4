package domain

import "github.com/shopspring/decimal"

// CapacityStatus classifies repayment capacity
type CapacityStatus string

const (
	StatusNotFeasible CapacityStatus = "not_feasible"
	StatusMarginal    CapacityStatus = "marginal"
	StatusFeasible    CapacityStatus = "feasible"
)

// FixedCorrections are the profile-independent additions plus the employment surcharge
type FixedCorrections struct {
	HealthDeductible    decimal.Decimal `json:"health_deductible" yaml:"health_deductible"`
	ReserveAllowance    decimal.Decimal `json:"reserve_allowance" yaml:"reserve_allowance"`
	EmploymentSurcharge decimal.Decimal `json:"employment_surcharge" yaml:"employment_surcharge"`
	Total               decimal.Decimal `json:"total" yaml:"total"`
}

// IndividualCosts are the household-specific additions
type IndividualCosts struct {
	Commute      decimal.Decimal `json:"commute" yaml:"commute"`
	Alimony      decimal.Decimal `json:"alimony" yaml:"alimony"`
	Childcare    decimal.Decimal `json:"childcare" yaml:"childcare"`
	MunicipalTax decimal.Decimal `json:"municipal_tax" yaml:"municipal_tax"`
	StudyCosts   decimal.Decimal `json:"study_costs" yaml:"study_costs"`
	UnionDues    decimal.Decimal `json:"union_dues" yaml:"union_dues"`
	Medication   decimal.Decimal `json:"medication" yaml:"medication"`
	Total        decimal.Decimal `json:"total" yaml:"total"`
}

// BudgetBreakdown itemizes the protected amount before the income cap
type BudgetBreakdown struct {
	BaseAmount        decimal.Decimal  `json:"base_amount" yaml:"base_amount"`
	ChildSurcharge    decimal.Decimal  `json:"child_surcharge" yaml:"child_surcharge"`
	HousingCorrection decimal.Decimal  `json:"housing_correction" yaml:"housing_correction"`
	Fixed             FixedCorrections `json:"fixed_corrections" yaml:"fixed_corrections"`
	Individual        IndividualCosts  `json:"individual_costs" yaml:"individual_costs"`
}

// ProtectedBudgetResult is the outcome of one protected-budget calculation
type ProtectedBudgetResult struct {
	ProtectedAmount     decimal.Decimal `json:"protected_amount" yaml:"protected_amount"`
	PreCapAmount        decimal.Decimal `json:"pre_cap_amount" yaml:"pre_cap_amount"`
	CapAmount           decimal.Decimal `json:"cap_amount" yaml:"cap_amount"` // zero when net income is zero
	CapApplied          bool            `json:"cap_applied" yaml:"cap_applied"`
	Breakdown           BudgetBreakdown `json:"breakdown" yaml:"breakdown"`
	NetIncome           decimal.Decimal `json:"net_income" yaml:"net_income"`
	ExistingObligations decimal.Decimal `json:"existing_obligations" yaml:"existing_obligations"`
	RepaymentCapacity   decimal.Decimal `json:"repayment_capacity" yaml:"repayment_capacity"`
	Status              CapacityStatus  `json:"status" yaml:"status"`
	NormsLabel          string          `json:"norms_label" yaml:"norms_label"`
}
