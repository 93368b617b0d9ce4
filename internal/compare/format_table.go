package compare

import (
	"fmt"
	"strings"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
)

// TableFormatter renders a comparison as console tables
type TableFormatter struct{}

// Format renders the comparison set
func (tf *TableFormatter) Format(cs *ComparisonSet) string {
	var sb strings.Builder

	title := "DEBT REPAYMENT COMPARISON"
	if cs.CaseName != "" {
		title += ": " + cs.CaseName
	}
	sb.WriteString(output.RenderTitle(title) + "\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n\n")

	sb.WriteString(output.RenderSection("Budget") + "\n")
	sb.WriteString(fmt.Sprintf("Net income:           %s\n", output.FormatCurrency(cs.Budget.NetIncome)))
	sb.WriteString(fmt.Sprintf("Protected budget:     %s\n", output.FormatCurrency(cs.Budget.ProtectedAmount)))
	sb.WriteString(fmt.Sprintf("Existing obligations: %s\n", output.FormatCurrency(cs.Budget.ExistingObligations)))
	capacity := output.FormatCurrency(cs.Capacity)
	if cs.CapacityOverridden {
		capacity += " (override)"
	} else {
		capacity += " (" + output.StatusLabel(cs.Budget.Status) + ")"
	}
	sb.WriteString(fmt.Sprintf("Repayment capacity:   %s\n\n", capacity))

	if len(cs.Results) == 0 {
		sb.WriteString(output.RenderMuted("No open debts") + "\n")
	} else {
		table := output.Table{
			Title:   "Policies",
			Headers: []string{"Policy", "Months", "Interest", "Total paid", "vs best"},
		}
		for _, r := range cs.Results {
			name := string(r.Policy)
			if r.Policy == cs.Cheapest {
				name += " *"
			}
			months := fmt.Sprintf("%d", r.Months)
			diff := output.FormatCurrency(r.InterestDiffFromBest)
			if r.HorizonReached {
				months = fmt.Sprintf(">%d", r.Months)
				diff = "n/a"
			}
			table.Rows = append(table.Rows, []string{
				name, months,
				output.FormatCurrency(r.TotalInterest), output.FormatCurrency(r.TotalPaid), diff,
			})
		}
		sb.WriteString(output.RenderTable(table) + "\n")
	}

	if len(cs.Recommendations) > 0 {
		sb.WriteString("\n" + output.RenderSection("Recommendations") + "\n")
		for i, rec := range cs.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}
	if len(cs.Warnings) > 0 {
		sb.WriteString("\n" + output.RenderSection("Warnings") + "\n")
		for _, w := range cs.Warnings {
			sb.WriteString(output.RenderWarning(w) + "\n")
		}
	}
	return sb.String()
}
