package domain

import "github.com/shopspring/decimal"

// PolicyName identifies a debt prioritization policy
type PolicyName string

const (
	PolicySnowball     PolicyName = "snowball"
	PolicyAvalanche    PolicyName = "avalanche"
	PolicyProportional PolicyName = "proportional"
)

// PolicyNames lists the policies in presentation order
var PolicyNames = []PolicyName{PolicySnowball, PolicyAvalanche, PolicyProportional}

// DebtSchedule summarizes how one debt fared under a policy
type DebtSchedule struct {
	DebtID           string          `json:"debt_id" yaml:"debt_id"`
	Creditor         string          `json:"creditor" yaml:"creditor"`
	StartingBalance  decimal.Decimal `json:"starting_balance" yaml:"starting_balance"`
	InterestRate     decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	MinimumPayment   decimal.Decimal `json:"minimum_payment" yaml:"minimum_payment"`
	PayoffMonth      int             `json:"payoff_month" yaml:"payoff_month"` // 0 when not paid off within the horizon
	InterestAccrued  decimal.Decimal `json:"interest_accrued" yaml:"interest_accrued"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" yaml:"remaining_balance"`
}

// PayoffSimulationResult is the aggregate outcome of one policy.
// When HorizonReached is true, Months is a lower bound and RemainingBalance
// holds what was still owed.
type PayoffSimulationResult struct {
	Policy           PolicyName      `json:"policy" yaml:"policy"`
	Months           int             `json:"months" yaml:"months"`
	TotalInterest    decimal.Decimal `json:"total_interest" yaml:"total_interest"`
	TotalPaid        decimal.Decimal `json:"total_paid" yaml:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" yaml:"remaining_balance"`
	HorizonReached   bool            `json:"horizon_reached" yaml:"horizon_reached"`
	Schedule         []DebtSchedule  `json:"schedule" yaml:"schedule"`
}

// SimulationSet holds the three policy outcomes for the same input
type SimulationSet struct {
	Capacity     decimal.Decimal        `json:"capacity" yaml:"capacity"`
	Snowball     PayoffSimulationResult `json:"snowball" yaml:"snowball"`
	Avalanche    PayoffSimulationResult `json:"avalanche" yaml:"avalanche"`
	Proportional PayoffSimulationResult `json:"proportional" yaml:"proportional"`
}

// Results returns the three outcomes in presentation order
func (s SimulationSet) Results() []PayoffSimulationResult {
	return []PayoffSimulationResult{s.Snowball, s.Avalanche, s.Proportional}
}

// Result returns the outcome for a policy
func (s SimulationSet) Result(name PolicyName) (PayoffSimulationResult, bool) {
	switch name {
	case PolicySnowball:
		return s.Snowball, true
	case PolicyAvalanche:
		return s.Avalanche, true
	case PolicyProportional:
		return s.Proportional, true
	}
	return PayoffSimulationResult{}, false
}

// AllocationEntry is one creditor's share of a single-month proposal
type AllocationEntry struct {
	DebtID        string          `json:"debt_id" yaml:"debt_id"`
	Creditor      string          `json:"creditor" yaml:"creditor"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
	Share         decimal.Decimal `json:"share" yaml:"share"` // fraction of the total, 4 decimals
	MonthlyAmount decimal.Decimal `json:"monthly_amount" yaml:"monthly_amount"`
	PayoffMonths  int             `json:"payoff_months" yaml:"payoff_months"` // 0 when MonthlyAmount is zero
}

// AllocationProposal distributes one month of capacity over all creditors
type AllocationProposal struct {
	Capacity     decimal.Decimal   `json:"capacity" yaml:"capacity"`
	TotalDebt    decimal.Decimal   `json:"total_debt" yaml:"total_debt"`
	TotalAmount  decimal.Decimal   `json:"total_amount" yaml:"total_amount"`
	FloorApplied bool              `json:"floor_applied" yaml:"floor_applied"`
	Entries      []AllocationEntry `json:"entries" yaml:"entries"`
}
