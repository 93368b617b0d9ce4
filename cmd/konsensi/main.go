package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/calculation"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagNorms     string
	flagFormat    string
	flagDebug     bool
	flagNormsDate string
)

var rootCmd = &cobra.Command{
	Use:   "konsensi",
	Short: "Protected budget and debt repayment planner",
	Long: "Computes the legally protected part of a household's income, the repayment capacity " +
		"left over, and how quickly the household's debts are paid off under different repayment policies.",
	SilenceUsage: true,
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "konsensi %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && flagDebug {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagNorms, "norms", "", "Norm file with revision-dated tables (default: built-in tables)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format (console, csv, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug output for detailed calculations")
	rootCmd.PersistentFlags().StringVar(&flagNormsDate, "norms-date", "", "Use the norms in force on this date (YYYY-MM-DD)")

	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(requiredCapacityCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(normsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd())
}

// session bundles everything a case command needs
type session struct {
	Case   *config.Case
	Norms  domain.NormTable
	Format string
	Logger calculation.Logger
}

// loadSession reads preferences, the case file and the applicable norm table.
// Precedence for norms: --norms flag, then preferences; for the date:
// --norms-date, then the case's norms_date, then today.
func loadSession(caseFile string) (*session, error) {
	prefs, err := config.LoadPreferences()
	if err != nil {
		return nil, err
	}

	c, err := config.NewInputParser().LoadFromFile(caseFile)
	if err != nil {
		return nil, err
	}

	normsFile := flagNorms
	if normsFile == "" {
		normsFile = prefs.Norms.File
	}

	var at time.Time
	switch {
	case flagNormsDate != "":
		at, err = time.Parse("2006-01-02", flagNormsDate)
		if err != nil {
			return nil, fmt.Errorf("--norms-date must be YYYY-MM-DD: %w", err)
		}
	case c.NormsDate != nil:
		at = *c.NormsDate
	}

	table, err := config.ResolveNorms(normsFile, at)
	if err != nil {
		return nil, err
	}
	if prefs.Payoff.HorizonMonths != nil {
		table.Payoff.HorizonMonths = *prefs.Payoff.HorizonMonths
	}

	s := &session{
		Case:   c,
		Norms:  table,
		Format: flagFormat,
		Logger: calculation.NopLogger{},
	}
	if s.Format == "" {
		s.Format = prefs.Output.Format
	}
	if flagDebug {
		s.Logger = simpleCLILogger{}
		s.Logger.Debugf("case %s: norms %s, %d debts", c.Name, table.Label, len(c.Debts))
	}
	return s, nil
}

// render writes the report with the selected formatter
func (s *session) render(cmd *cobra.Command, report *output.Report) error {
	f := output.GetFormatterByName(s.Format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %v, aliases: %v)",
			s.Format, output.AvailableFormatterNames(), output.AvailableFormatAliases())
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
