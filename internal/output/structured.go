package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// YAMLFormatter renders the report as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFormatter writes one row per line item: budget components, policy
// outcomes and allocation entries, each tagged with its section
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Section", "Item", "Amount", "Months", "Detail"}); err != nil {
		return nil, err
	}

	var rows [][]string
	if b := report.Budget; b != nil {
		rows = append(rows,
			[]string{"budget", "base_amount", b.Breakdown.BaseAmount.StringFixed(2), "", ""},
			[]string{"budget", "child_surcharge", b.Breakdown.ChildSurcharge.StringFixed(2), "", ""},
			[]string{"budget", "housing_correction", b.Breakdown.HousingCorrection.StringFixed(2), "", ""},
			[]string{"budget", "fixed_corrections", b.Breakdown.Fixed.Total.StringFixed(2), "", ""},
			[]string{"budget", "individual_costs", b.Breakdown.Individual.Total.StringFixed(2), "", ""},
			[]string{"budget", "protected_amount", b.ProtectedAmount.StringFixed(2), "", capDetail(b.CapApplied)},
			[]string{"budget", "repayment_capacity", b.RepaymentCapacity.StringFixed(2), "", string(b.Status)},
		)
	}
	if s := report.Simulation; s != nil {
		for _, r := range s.Results() {
			detail := "paid off"
			if r.HorizonReached {
				detail = "horizon reached, remaining " + r.RemainingBalance.StringFixed(2)
			}
			rows = append(rows, []string{"payoff", string(r.Policy), r.TotalInterest.StringFixed(2), strconv.Itoa(r.Months), detail})
		}
	}
	if a := report.Allocation; a != nil {
		for _, e := range a.Entries {
			rows = append(rows, []string{"allocation", e.Creditor, e.MonthlyAmount.StringFixed(2), strconv.Itoa(e.PayoffMonths), FormatShare(e.Share)})
		}
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func capDetail(applied bool) string {
	if applied {
		return "income cap applied"
	}
	return ""
}
