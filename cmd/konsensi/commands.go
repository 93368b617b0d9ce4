package main

import (
	"fmt"
	"strings"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/calculation"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/compare"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/payoff"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [case-file]",
	Short: "Compute the protected budget and repayment capacity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0])
		if err != nil {
			return err
		}

		calc := calculation.NewCalculator(s.Norms)
		calc.SetLogger(s.Logger)
		result := calc.Compute(s.Case.Profile)

		report := output.NewReport(s.Case.Name)
		report.Budget = &result
		report.Warnings = s.Case.Warnings
		return s.render(cmd, report)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [case-file]",
	Short: "Compare snowball, avalanche and proportional repayment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0])
		if err != nil {
			return err
		}

		capacity, err := s.capacity(cmd)
		if err != nil {
			return err
		}
		sim := payoff.NewSimulator(s.Norms.Payoff)
		sim.SetLogger(s.Logger)
		set := sim.Simulate(s.Case.Debts, capacity)

		report := output.NewReport(s.Case.Name)
		report.Simulation = &set
		report.Warnings = s.Case.Warnings
		return s.render(cmd, report)
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate [case-file]",
	Short: "Propose a single month's proportional payment per creditor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0])
		if err != nil {
			return err
		}

		capacity, err := s.capacity(cmd)
		if err != nil {
			return err
		}
		proposal := payoff.NewSimulator(s.Norms.Payoff).Allocate(s.Case.Debts, capacity)

		report := output.NewReport(s.Case.Name)
		report.Allocation = &proposal
		report.Warnings = s.Case.Warnings
		return s.render(cmd, report)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [case-file]",
	Short: "Full plan: budget, capacity, policy comparison and recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0])
		if err != nil {
			return err
		}

		engine := compare.NewCompareEngine(s.Norms)
		engine.SetLogger(s.Logger)

		opts := compare.CompareOptions{
			CapacityOverride: s.Case.CapacityOverride,
			CaseName:         s.Case.Name,
			CasePath:         s.Case.Path,
		}
		if override, err := capacityFlag(cmd); err != nil {
			return err
		} else if override != nil {
			opts.CapacityOverride = override
		}

		cs, err := engine.Compare(cmd.Context(), s.Case.Profile, s.Case.Debts, opts)
		if err != nil {
			return err
		}
		cs.Warnings = append(append([]string{}, s.Case.Warnings...), cs.Warnings...)

		if save, _ := cmd.Flags().GetBool("save"); save {
			f := output.GetFormatterByName(s.Format)
			if f == nil {
				return fmt.Errorf("unknown format %q", s.Format)
			}
			filename, err := output.WriteFormatted(f, cs.ToReport(), extensionFor(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		var out string
		switch strings.ToLower(s.Format) {
		case "", "console", "table", "text":
			out = (&compare.TableFormatter{}).Format(cs)
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(cs)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(cs)
		default:
			return s.render(cmd, cs.ToReport())
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{simulateCmd, allocateCmd, planCmd} {
		cmd.Flags().String("capacity", "", "Monthly repayment capacity to use instead of the computed one")
	}
	planCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

// capacityFlag returns the --capacity override, if given
func capacityFlag(cmd *cobra.Command) (*decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString("capacity")
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("--capacity must be a number: %w", err)
	}
	return &d, nil
}

// capacity resolves the repayment capacity: --capacity, then the case's
// capacity_override, then the computed protected-budget capacity
func (s *session) capacity(cmd *cobra.Command) (decimal.Decimal, error) {
	override, err := capacityFlag(cmd)
	if err != nil {
		return decimal.Zero, err
	}
	if override != nil {
		return *override, nil
	}
	if s.Case.CapacityOverride != nil {
		return *s.Case.CapacityOverride, nil
	}
	calc := calculation.NewCalculator(s.Norms)
	calc.SetLogger(s.Logger)
	return calc.Compute(s.Case.Profile).RepaymentCapacity, nil
}

func extensionFor(formatter string) string {
	switch formatter {
	case "console":
		return "txt"
	default:
		return formatter
	}
}
