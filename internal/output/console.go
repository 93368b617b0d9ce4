package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a report as styled tables for the terminal
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "KONSENSI BUDGET REPORT"
	if report.CaseName != "" {
		title += " - " + report.CaseName
	}
	fmt.Fprintln(&buf, RenderTitle(title))

	if report.Budget != nil {
		fmt.Fprintln(&buf)
		buf.WriteString(BudgetTable(report.Budget))
		fmt.Fprintf(&buf, "Repayment capacity: %s (%s)\n",
			FormatCurrency(report.Budget.RepaymentCapacity), StatusLabel(report.Budget.Status))
	}
	if report.Simulation != nil {
		fmt.Fprintln(&buf)
		buf.WriteString(SimulationTable(report.Simulation))
	}
	if report.Allocation != nil {
		fmt.Fprintln(&buf)
		buf.WriteString(AllocationTable(report.Allocation))
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(&buf)
		for _, w := range report.Warnings {
			fmt.Fprintln(&buf, RenderWarning(w))
		}
	}
	if len(report.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, RenderSection("RECOMMENDATIONS"))
		for i, rec := range report.Recommendations {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, rec)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, RenderMuted("calculation "+report.CalculationID))
	return buf.Bytes(), nil
}

// StatusLabel colors a capacity status
func StatusLabel(status domain.CapacityStatus) string {
	switch status {
	case domain.StatusFeasible:
		return goodStyle.Render("feasible")
	case domain.StatusMarginal:
		return warnStyle.Render("marginal")
	default:
		return badStyle.Render("not feasible")
	}
}

// BudgetTable itemizes a protected-budget result
func BudgetTable(b *domain.ProtectedBudgetResult) string {
	bd := b.Breakdown
	rows := [][]string{
		{"Base amount", FormatCurrency(bd.BaseAmount)},
		{"Child surcharge", FormatCurrency(bd.ChildSurcharge)},
		{"Housing correction", FormatCurrency(bd.HousingCorrection)},
		{"Health deductible", FormatCurrency(bd.Fixed.HealthDeductible)},
		{"Reserve allowance", FormatCurrency(bd.Fixed.ReserveAllowance)},
		{"Employment surcharge", FormatCurrency(bd.Fixed.EmploymentSurcharge)},
	}
	individual := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Commute", bd.Individual.Commute},
		{"Alimony", bd.Individual.Alimony},
		{"Childcare", bd.Individual.Childcare},
		{"Municipal tax", bd.Individual.MunicipalTax},
		{"Study costs", bd.Individual.StudyCosts},
		{"Union dues", bd.Individual.UnionDues},
		{"Medication", bd.Individual.Medication},
	}
	for _, item := range individual {
		if !item.amount.IsZero() {
			rows = append(rows, []string{item.label, FormatCurrency(item.amount)})
		}
	}

	rows = append(rows, []string{"---"}, []string{"Before income cap", FormatCurrency(b.PreCapAmount)})
	if b.CapApplied {
		rows = append(rows, []string{"Income cap", FormatCurrency(b.CapAmount)})
	}
	rows = append(rows,
		[]string{"Protected amount", FormatCurrency(b.ProtectedAmount)},
		[]string{"---"},
		[]string{"Net income", FormatCurrency(b.NetIncome)},
		[]string{"Existing obligations", FormatCurrency(b.ExistingObligations)},
		[]string{"Repayment capacity", FormatCurrency(b.RepaymentCapacity)},
	)

	title := "PROTECTED BUDGET"
	if b.NormsLabel != "" {
		title += " (norms " + b.NormsLabel + ")"
	}
	return RenderTable(Table{Title: title, Headers: []string{"Item", "Monthly"}, Rows: rows})
}

// SimulationTable compares the three payoff policies
func SimulationTable(s *domain.SimulationSet) string {
	rows := make([][]string, 0, 3)
	for _, r := range s.Results() {
		months := strconv.Itoa(r.Months)
		if r.HorizonReached {
			months = ">" + months
		}
		rows = append(rows, []string{
			string(r.Policy),
			months,
			FormatCurrency(r.TotalInterest),
			FormatCurrency(r.TotalPaid),
			FormatCurrency(r.RemainingBalance),
		})
	}
	return RenderTable(Table{
		Title:   "PAYOFF POLICIES AT " + FormatCurrency(s.Capacity) + " / MONTH",
		Headers: []string{"Policy", "Months", "Interest", "Paid", "Remaining"},
		Rows:    rows,
	})
}

// AllocationTable lists a single-month distribution proposal
func AllocationTable(a *domain.AllocationProposal) string {
	rows := make([][]string, 0, len(a.Entries)+2)
	for _, e := range a.Entries {
		months := "-"
		if e.PayoffMonths > 0 {
			months = strconv.Itoa(e.PayoffMonths)
		}
		rows = append(rows, []string{
			e.Creditor,
			FormatCurrency(e.Balance),
			FormatShare(e.Share),
			FormatCurrency(e.MonthlyAmount),
			months,
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", FormatCurrency(a.TotalDebt), "", FormatCurrency(a.TotalAmount), ""})

	title := "PROPOSED DISTRIBUTION OF " + FormatCurrency(a.Capacity)
	if a.FloorApplied {
		title += " (minimum per creditor applied)"
	}
	return RenderTable(Table{
		Title:   title,
		Headers: []string{"Creditor", "Balance", "Share", "Monthly", "Months"},
		Rows:    rows,
	})
}
