package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var normsCmd = &cobra.Command{
	Use:   "norms",
	Short: "Show the norm table in force on a date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := config.LoadPreferences()
		if err != nil {
			return err
		}
		normsFile := flagNorms
		if normsFile == "" {
			normsFile = prefs.Norms.File
		}

		history := domain.DefaultNormHistory()
		if normsFile != "" {
			if history, err = config.LoadNorms(normsFile); err != nil {
				return err
			}
		}

		at := time.Now()
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			if at, err = time.Parse("2006-01-02", raw); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
		}
		table, ok := history.At(at)
		if !ok {
			return fmt.Errorf("no norm tables defined")
		}

		format := flagFormat
		if format == "" {
			format = prefs.Output.Format
		}
		out := cmd.OutOrStdout()

		switch strings.ToLower(format) {
		case "json":
			data, err := json.MarshalIndent(table, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case "yaml", "yml":
			data, err := yaml.Marshal(table)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
		default:
			fmt.Fprintln(out, normTable(table, history))
		}
		return nil
	},
}

func init() {
	normsCmd.Flags().String("date", "", "Date to resolve (YYYY-MM-DD, default today)")
}

func normTable(n domain.NormTable, history domain.NormHistory) string {
	eur := output.FormatCurrency
	t := output.Table{
		Title:   fmt.Sprintf("Norms %s (effective %s)", n.Label, n.EffectiveFrom.Format("2006-01-02")),
		Headers: []string{"Norm", "Value"},
		Rows: [][]string{
			{"Base: single", eur(n.BaseAmounts.Single)},
			{"Base: single parent", eur(n.BaseAmounts.SingleParent)},
			{"Base: cohabiting, two incomes", eur(n.BaseAmounts.CohabitingDualIncome)},
			{"Base: cohabiting, one income", eur(n.BaseAmounts.CohabitingSingleIncome)},
			{"---"},
			{"Child 1", eur(n.ChildSurcharges.First)},
			{"Child 2", eur(n.ChildSurcharges.Second)},
			{"Child 3", eur(n.ChildSurcharges.Third)},
			{"Child 4+", eur(n.ChildSurcharges.FourthAndBeyond)},
			{"---"},
			{"Housing threshold", eur(n.Housing.Threshold)},
			{"Housing correction", output.FormatShare(n.Housing.CorrectionFactor)},
			{"Health deductible / month", eur(n.Fixed.HealthDeductibleMonthly)},
			{"Reserve allowance", eur(n.Fixed.ReserveAllowance)},
			{"Employment surcharge", eur(n.Fixed.EmploymentSurcharge)},
			{"Commute rate / km", eur(n.Commute.RatePerKm)},
			{"Income cap", output.FormatShare(n.IncomeCapFactor)},
			{"---"},
			{"Horizon (months)", fmt.Sprintf("%d", n.Payoff.HorizonMonths)},
			{"Default minimum payment", eur(n.Payoff.DefaultMinimumPayment)},
			{"Allocation floor", eur(n.Payoff.AllocationFloor)},
		},
	}

	var revisions []string
	for _, h := range history.Sorted() {
		revisions = append(revisions, h.Label)
	}
	return output.RenderTable(t) + "\n" + output.RenderMuted("revisions: "+strings.Join(revisions, ", "))
}
