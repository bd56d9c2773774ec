package demand

import (
	"fmt"
	"math"

	"github.com/rustyeddy/pricingsim/pkg/validate"
)

const (
	// MaxPriceSensitivity bounds the elasticity coefficient.
	MaxPriceSensitivity = 10.0

	// MaxPolicyCount is the largest policy count demand may produce. A price
	// far below reference with a high sensitivity grows demand exponentially;
	// beyond this the period is rejected rather than simulated.
	MaxPolicyCount = 10_000_000
)

// Market describes how many policies sell at the reference price and how
// sharply sales react when the price moves away from it.
type Market struct {
	BasePolicies     int     // policies sold at the reference premium
	PriceSensitivity float64 // 0 is perfectly inelastic
}

func (m Market) Validate() error {
	return validate.First(
		validate.PositiveInt("base_policies", m.BasePolicies),
		sensitivity(m.PriceSensitivity),
	)
}

func sensitivity(v float64) error {
	if err := validate.NonNegative("price_sensitivity", v); err != nil {
		return err
	}
	if v > MaxPriceSensitivity {
		return &validate.ParamError{Field: "price_sensitivity", Value: v, Reason: fmt.Sprintf("must not exceed %g", MaxPriceSensitivity)}
	}
	return nil
}

// PolicyCount is ExpectedPolicyCount for this market.
func (m Market) PolicyCount(chosen, reference float64) (int, error) {
	return ExpectedPolicyCount(chosen, m.BasePolicies, reference, m.PriceSensitivity)
}

// Factor is the demand multiplier exp(-sensitivity * (ratio - 1)) where ratio
// is chosen/reference. A zero reference carries no price signal and yields 1.
func Factor(chosen, reference, sensitivity float64) float64 {
	ratio := 1.0
	if reference > 0 {
		ratio = chosen / reference
	}
	return math.Exp(-sensitivity * (ratio - 1))
}

// ExpectedPolicyCount returns the number of policies expected to sell at the
// chosen premium. It is non-increasing in chosen for a positive sensitivity
// and equals basePolicies when chosen == reference or s == 0. Sensitivities
// above MaxPriceSensitivity and counts above MaxPolicyCount are rejected.
func ExpectedPolicyCount(chosen float64, basePolicies int, reference, s float64) (int, error) {
	if err := validate.First(
		validate.NonNegative("chosen_premium", chosen),
		validate.PositiveInt("base_policies", basePolicies),
		validate.NonNegative("reference_premium", reference),
		sensitivity(s),
	); err != nil {
		return 0, err
	}

	n := math.RoundToEven(float64(basePolicies) * Factor(chosen, reference, s))
	if n < 0 {
		return 0, nil
	}
	if n > MaxPolicyCount {
		return 0, &validate.ParamError{Field: "policy_count", Value: n, Reason: fmt.Sprintf("demand exceeds %d policies", MaxPolicyCount)}
	}
	return int(n), nil
}
