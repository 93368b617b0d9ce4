package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TableFormatter formats capacity results as plain console text
type TableFormatter struct{}

// Format renders a single-policy result
func (tf *TableFormatter) Format(result *CapacityResult) string {
	var sb strings.Builder

	sb.WriteString("REQUIRED REPAYMENT CAPACITY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Policy:             %s\n", result.Policy))
	sb.WriteString(fmt.Sprintf("Target:             %d months\n", result.TargetMonths))
	sb.WriteString(fmt.Sprintf("Required capacity:  %s / month\n", result.RequiredCapacity.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Actual payoff:      %d months\n", result.Simulation.Months))
	sb.WriteString(fmt.Sprintf("Total interest:     %s\n", result.Simulation.TotalInterest.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Iterations:         %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:        %s\n", result.ConvergenceInfo))
	}
	return sb.String()
}

// FormatMulti renders the per-policy comparison
func (tf *TableFormatter) FormatMulti(multi *MultiPolicyResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("REQUIRED CAPACITY FOR A %d-MONTH PAYOFF\n", multi.TargetMonths))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %14s %10s %14s\n", "Policy", "Capacity", "Months", "Interest"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, r := range multi.Results {
		marker := " "
		if multi.Cheapest != nil && r.Policy == multi.Cheapest.Policy {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%-13s %14s %10d %14s\n", marker, r.Policy,
			r.RequiredCapacity.StringFixed(2), r.Simulation.Months, r.Simulation.TotalInterest.StringFixed(2)))
	}
	for _, name := range multi.Unreachable {
		sb.WriteString(fmt.Sprintf(" %-13s %14s\n", name, "unreachable"))
	}

	if len(multi.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		for i, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any solver result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal solver result: %w", err)
	}
	return string(data), nil
}
