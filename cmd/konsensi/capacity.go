package main

import (
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/breakeven"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/payoff"
	"github.com/spf13/cobra"
)

var requiredCapacityCmd = &cobra.Command{
	Use:   "required-capacity [case-file]",
	Short: "Find the monthly capacity needed to be debt-free within a deadline",
	Long: "Searches for the smallest monthly repayment capacity, to the cent, for which a policy " +
		"pays off every debt in the case within --months. Without --policy all policies are compared.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0])
		if err != nil {
			return err
		}

		months, _ := cmd.Flags().GetInt("months")
		policyName, _ := cmd.Flags().GetString("policy")

		sim := payoff.NewSimulator(s.Norms.Payoff)
		sim.SetLogger(s.Logger)
		solver := breakeven.NewDefaultSolver(sim)
		json := s.Format == "json"

		if policyName != "" {
			policy, err := payoff.PolicyByName(policyName)
			if err != nil {
				return err
			}
			result, err := solver.RequiredCapacity(cmd.Context(), breakeven.CapacityRequest{
				Debts:        s.Case.Debts,
				Policy:       policy.Name(),
				TargetMonths: months,
			})
			if err != nil {
				return err
			}
			if json {
				return printJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return nil
		}

		multi, err := solver.RequiredCapacityAll(cmd.Context(), s.Case.Debts, months)
		if err != nil {
			return err
		}
		if json {
			return printJSON(cmd, multi)
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMulti(multi))
		return nil
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	requiredCapacityCmd.Flags().Int("months", 36, "Target number of months to be debt-free")
	requiredCapacityCmd.Flags().String("policy", "", fmt.Sprintf("Policy to solve for %v (default: all)", domain.PolicyNames))
}
