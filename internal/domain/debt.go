package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Debt is one outstanding claim of a creditor against the household
type Debt struct {
	ID             string          `yaml:"id" json:"id"`
	Creditor       string          `yaml:"creditor" json:"creditor"`
	Principal      decimal.Decimal `yaml:"principal" json:"principal"`
	AmountPaid     decimal.Decimal `yaml:"amount_paid" json:"amount_paid"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`     // annual, percent
	MonthlyPayment decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment"` // contracted minimum; zero means "use the norm floor"
}

// RemainingBalance is principal minus what was already paid, never below zero
func (d Debt) RemainingBalance() decimal.Decimal {
	return nonNegative(d.Principal.Sub(d.AmountPaid))
}

// IsOpen reports whether anything remains to be paid
func (d Debt) IsOpen() bool {
	return d.RemainingBalance().IsPositive()
}

// MinimumPayment returns the contracted payment or the given floor when none is set
func (d Debt) MinimumPayment(floor decimal.Decimal) decimal.Decimal {
	if d.MonthlyPayment.IsPositive() {
		return d.MonthlyPayment
	}
	return floor
}

// Label is the creditor name, or the id when the name is missing
func (d Debt) Label() string {
	if d.Creditor != "" {
		return d.Creditor
	}
	return d.ID
}

// OpenDebts returns the debts with a positive remaining balance, in input order
func OpenDebts(debts []Debt) []Debt {
	open := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.IsOpen() {
			open = append(open, d)
		}
	}
	return open
}

// TotalRemaining sums the remaining balance of all debts
func TotalRemaining(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.RemainingBalance())
	}
	return total
}

var debtKeys = map[string][]string{
	"id":              {"id", "debt_id", "schuld_id"},
	"creditor":        {"creditor", "creditor_name", "schuldeiser", "naam", "name"},
	"principal":       {"principal", "amount", "bedrag", "totaal_bedrag", "hoofdsom"},
	"amount_paid":     {"amount_paid", "paid", "betaald", "afgelost", "amountPaid"},
	"interest_rate":   {"interest_rate", "rate", "rente", "rentepercentage", "interestRate"},
	"monthly_payment": {"monthly_payment", "minimum_payment", "maandbedrag", "termijnbedrag", "monthlyPayment"},
}

// ParseDebt builds a Debt from a free-form record. index is the position of
// the record in its list and is used to generate an id when none is present.
func ParseDebt(raw map[string]any, index int) Debt {
	get := func(key string) any {
		return lookup(raw, debtKeys[key])
	}

	d := Debt{
		ID:             SafeString(get("id")),
		Creditor:       SafeString(get("creditor")),
		Principal:      SafeAmount(get("principal")),
		AmountPaid:     SafeAmount(get("amount_paid")),
		InterestRate:   SafeAmount(get("interest_rate")),
		MonthlyPayment: SafeAmount(get("monthly_payment")),
	}
	if d.ID == "" {
		d.ID = fmt.Sprintf("debt-%d", index+1)
	}
	return d
}

// ParseDebts converts a list of free-form records, preserving order
func ParseDebts(raw []map[string]any) []Debt {
	debts := make([]Debt, 0, len(raw))
	for i, r := range raw {
		debts = append(debts, ParseDebt(r, i))
	}
	return debts
}

// UnknownDebtKeys lists the keys of raw that ParseDebt ignores, sorted
func UnknownDebtKeys(raw map[string]any) []string {
	return unknownKeys(raw, debtKeys)
}
