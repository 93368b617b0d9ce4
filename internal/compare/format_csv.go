package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter writes one row per policy
type CSVFormatter struct{}

// Format renders the policy results as CSV
func (cf *CSVFormatter) Format(cs *ComparisonSet) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Policy", "Months", "HorizonReached", "TotalInterest", "TotalPaid", "RemainingBalance", "InterestDiffFromBest", "Cheapest", "Fastest"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range cs.Results {
		row := []string{
			string(r.Policy),
			fmt.Sprintf("%d", r.Months),
			fmt.Sprintf("%t", r.HorizonReached),
			r.TotalInterest.StringFixed(2),
			r.TotalPaid.StringFixed(2),
			r.RemainingBalance.StringFixed(2),
			r.InterestDiffFromBest.StringFixed(2),
			fmt.Sprintf("%t", r.Policy == cs.Cheapest),
			fmt.Sprintf("%t", r.Policy == cs.Fastest),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row for %s: %w", r.Policy, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}
