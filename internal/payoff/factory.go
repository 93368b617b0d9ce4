package payoff

import (
	"fmt"
	"strings"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
)

// PolicyByName creates a policy from its name
func PolicyByName(name string) (Policy, error) {
	switch domain.PolicyName(strings.ToLower(strings.TrimSpace(name))) {
	case domain.PolicySnowball:
		return NewSnowballPolicy(), nil
	case domain.PolicyAvalanche:
		return NewAvalanchePolicy(), nil
	case domain.PolicyProportional:
		return NewProportionalPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown payoff policy %q (expected snowball, avalanche or proportional)", name)
	}
}

// AllPolicies returns one instance of every policy in presentation order
func AllPolicies() []Policy {
	return []Policy{NewSnowballPolicy(), NewAvalanchePolicy(), NewProportionalPolicy()}
}
