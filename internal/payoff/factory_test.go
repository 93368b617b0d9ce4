package payoff

import (
	"testing"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.PolicyName
	}{
		{"snowball", domain.PolicySnowball},
		{"Avalanche", domain.PolicyAvalanche},
		{" proportional ", domain.PolicyProportional},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := PolicyByName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy.Name())
		})
	}

	_, err := PolicyByName("debt_tsunami")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payoff policy")
}

func TestAllPolicies(t *testing.T) {
	policies := AllPolicies()
	require.Len(t, policies, len(domain.PolicyNames))
	for i, p := range policies {
		assert.Equal(t, domain.PolicyNames[i], p.Name())
	}
}

func TestSimulator_Horizon(t *testing.T) {
	sim := NewSimulator(domain.PayoffNorms{})
	assert.Equal(t, 360, sim.Horizon(), "zero horizon falls back to the default")

	norms := domain.DefaultNorms().Payoff
	norms.HorizonMonths = 12
	assert.Equal(t, 12, NewSimulator(norms).Horizon())
}
