package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles whatever a command produced so every formatter can render it.
// Sections that were not computed are nil.
type Report struct {
	CalculationID   string                        `json:"calculation_id" yaml:"calculation_id"`
	GeneratedAt     time.Time                     `json:"generated_at" yaml:"generated_at"`
	CaseName        string                        `json:"case_name,omitempty" yaml:"case_name,omitempty"`
	Budget          *domain.ProtectedBudgetResult `json:"budget,omitempty" yaml:"budget,omitempty"`
	Simulation      *domain.SimulationSet         `json:"simulation,omitempty" yaml:"simulation,omitempty"`
	Allocation      *domain.AllocationProposal    `json:"allocation,omitempty" yaml:"allocation,omitempty"`
	Recommendations []string                      `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Warnings        []string                      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReport creates an empty report with a fresh calculation id
func NewReport(caseName string) *Report {
	return &Report{
		CalculationID: uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		CaseName:      caseName,
	}
}

// FormatCurrency formats an amount in euros
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-€" + amount.Abs().StringFixed(2)
	}
	return "€" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatShare formats a 0..1 fraction as percentage
func FormatShare(share decimal.Decimal) string {
	return FormatPercentage(share.Mul(decimal.NewFromInt(100)))
}
