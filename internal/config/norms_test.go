package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func marshalNorms(t *testing.T, tables ...domain.NormTable) []byte {
	t.Helper()
	data, err := yaml.Marshal(normDocument{Norms: tables})
	require.NoError(t, err)
	return data
}

func TestParseNorms_DefaultHistoryRoundTrip(t *testing.T) {
	history, err := ParseNorms(marshalNorms(t, domain.DefaultNormHistory()...))
	require.NoError(t, err)
	require.Len(t, history, 2)

	table, ok := history.ByLabel("2024")
	require.True(t, ok)
	assert.True(t, table.BaseAmounts.Single.Equal(decimal.NewFromInt(1263)))
	assert.True(t, table.Housing.Threshold.Equal(decimal.RequireFromString("879.66")))
	assert.Equal(t, 360, table.Payoff.HorizonMonths)
	assert.True(t, table.EffectiveFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseNorms_Literal(t *testing.T) {
	doc := `
norms:
  - label: "2026"
    effective_from: 2026-01-01
    base_amounts: {single: 1340, single_parent: 1475, cohabiting_dual_income: 1912, cohabiting_single_income: 1840}
    child_surcharges: {first: 357, second: 289, third: 259, fourth_and_beyond: 227}
    housing: {threshold: 921.50, correction_factor: 0.9}
    fixed: {health_deductible_monthly: 32.08, reserve_allowance: 50, employment_surcharge: 172}
    commute: {minimum_distance_km: 10, rate_per_km: 0.23, weeks_per_month: 4.33}
    childcare_protected_factor: 0.2
    income_cap_factor: 0.95
    status: {not_feasible_below: 25, marginal_up_to: 50}
    payoff: {horizon_months: 240, epsilon: 0.01, default_minimum_payment: 25, allocation_floor: 10}
`
	history, err := ParseNorms([]byte(doc))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2026", history[0].Label)
	assert.Equal(t, 240, history[0].Payoff.HorizonMonths)
	assert.True(t, history[0].Housing.Threshold.Equal(decimal.RequireFromString("921.5")))
}

func TestValidateNorms_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.NormTable)
		msg    string
	}{
		{"negative base amount", func(n *domain.NormTable) { n.BaseAmounts.Single = decimal.NewFromInt(-1) }, "BaseAmounts.Single fails gte=0"},
		{"housing factor above one", func(n *domain.NormTable) { n.Housing.CorrectionFactor = decimal.RequireFromString("1.5") }, "Housing.CorrectionFactor fails lte=1"},
		{"zero cap factor", func(n *domain.NormTable) { n.IncomeCapFactor = decimal.Zero }, "IncomeCapFactor fails gt=0"},
		{"zero horizon", func(n *domain.NormTable) { n.Payoff.HorizonMonths = 0 }, "Payoff.HorizonMonths fails gt=0"},
		{"missing label", func(n *domain.NormTable) { n.Label = "" }, "Label fails required"},
		{"missing date", func(n *domain.NormTable) { n.EffectiveFrom = time.Time{} }, "EffectiveFrom fails required"},
		{"rising child tier", func(n *domain.NormTable) { n.ChildSurcharges.Third = decimal.NewFromInt(400) }, "ChildSurcharges.Third fails nonincreasing"},
		{"inverted thresholds", func(n *domain.NormTable) { n.Status.MarginalUpTo = decimal.NewFromInt(10) }, "Status.MarginalUpTo fails gtefield=NotFeasibleBelow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := domain.DefaultNorms()
			tt.mutate(&table)

			err := ValidateNorms(domain.NormHistory{table})
			require.Error(t, err)

			var normErr *NormError
			require.True(t, errors.As(err, &normErr))
			assert.Equal(t, "validate_norms", normErr.Operation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateNorms_HistoryLevel(t *testing.T) {
	assert.ErrorContains(t, ValidateNorms(nil), "no norm tables defined")

	a := domain.DefaultNorms()
	b := domain.DefaultNorms()
	assert.ErrorContains(t, ValidateNorms(domain.NormHistory{a, b}), `duplicate label "2025"`)

	b.Label = "2025-bis"
	assert.ErrorContains(t, ValidateNorms(domain.NormHistory{a, b}), "share effective date 2025-01-01")

	assert.NoError(t, ValidateNorms(domain.DefaultNormHistory()))
}

func TestParseNorms_InvalidYAML(t *testing.T) {
	_, err := ParseNorms([]byte("norms: {"))
	var normErr *NormError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "parse_norms", normErr.Operation)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestResolveNorms(t *testing.T) {
	table, err := ResolveNorms("", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024", table.Label)

	table, err = ResolveNorms("", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2025", table.Label, "today resolves to the latest built-in table")

	custom := domain.DefaultNorms()
	custom.Label = "custom"
	path := filepath.Join(t.TempDir(), "norms.yaml")
	require.NoError(t, os.WriteFile(path, marshalNorms(t, custom), 0o600))

	table, err = ResolveNorms(path, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "custom", table.Label)

	_, err = ResolveNorms(filepath.Join(t.TempDir(), "nope.yaml"), time.Time{})
	assert.ErrorContains(t, err, "load_norms")
}

func TestNormError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &NormError{Operation: "load_norms", Message: "failed", Cause: cause}
	assert.Equal(t, "load_norms: failed: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "x: y", (&NormError{Operation: "x", Message: "y"}).Error())
}

func TestLoadNorms_ExampleFile(t *testing.T) {
	history, err := LoadNorms(filepath.Join("..", "..", "examples", "norms.yaml"))
	require.NoError(t, err)
	require.Len(t, history, 1)

	builtIn, ok := domain.DefaultNormHistory().ByLabel("2024")
	require.True(t, ok)
	assert.True(t, history[0].BaseAmounts.Single.Equal(builtIn.BaseAmounts.Single))
	assert.True(t, history[0].Housing.Threshold.Equal(builtIn.Housing.Threshold))
	assert.Equal(t, builtIn.Payoff.HorizonMonths, history[0].Payoff.HorizonMonths)
}
