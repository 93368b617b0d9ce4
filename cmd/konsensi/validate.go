package main

import (
	"fmt"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [case-file]",
	Short: "Check a case file (and the --norms file, if given)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if flagNorms != "" {
			history, err := config.LoadNorms(flagNorms)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Norm file %s: %d table(s) valid\n", flagNorms, len(history))
		}

		c, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Case %s: %d debt(s)\n", c.Name, len(c.Debts))
		if len(c.Warnings) == 0 {
			fmt.Fprintln(out, "No problems found")
			return nil
		}
		for _, w := range c.Warnings {
			fmt.Fprintln(out, output.RenderWarning(w))
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			return fmt.Errorf("%d warning(s) in %s", len(c.Warnings), args[0])
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
