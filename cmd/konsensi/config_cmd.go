package main

import (
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		prefs, err := config.LoadPreferences()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "  Config file: %s\n\n", config.PreferencesPath())
		fmt.Fprintln(out, "  [Output]")
		fmt.Fprintf(out, "    Format: %s\n\n", prefs.Output.Format)
		fmt.Fprintln(out, "  [Norms]")
		if prefs.Norms.File != "" {
			fmt.Fprintf(out, "    File: %s\n\n", prefs.Norms.File)
		} else {
			fmt.Fprintln(out, "    File: built-in tables")
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "  [Payoff]")
		if prefs.Payoff.HorizonMonths != nil {
			fmt.Fprintf(out, "    Horizon: %d months\n", *prefs.Payoff.HorizonMonths)
		} else {
			fmt.Fprintln(out, "    Horizon: from norm table")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prefs, err := config.LoadPreferences()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("default-format") {
			prefs.Output.Format, _ = cmd.Flags().GetString("default-format")
		}
		if cmd.Flags().Changed("norms-file") {
			prefs.Norms.File, _ = cmd.Flags().GetString("norms-file")
		}
		if cmd.Flags().Changed("horizon") {
			horizon, _ := cmd.Flags().GetInt("horizon")
			if horizon <= 0 {
				prefs.Payoff.HorizonMonths = nil
			} else {
				prefs.Payoff.HorizonMonths = &horizon
			}
		}

		if err := config.SavePreferences(prefs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", config.PreferencesPath())
		return nil
	},
}

func init() {
	configSetCmd.Flags().String("default-format", "console", "Default output format")
	configSetCmd.Flags().String("norms-file", "", "Default norm file (empty for built-in tables)")
	configSetCmd.Flags().Int("horizon", 0, "Simulation horizon override in months (0 clears it)")
	configCmd.AddCommand(configSetCmd)
}
