// Package claims draws the random claims experience of a pool of policies.
//
// Frequency is one Bernoulli trial per policy, drawn in a single step as the
// equivalent binomial count; every claim that occurs gets an exponentially
// distributed severity. The exponential has no upper bound, so a
// single period can produce a loss far above the mean.
package claims

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rustyeddy/pricingsim/pkg/validate"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Outcome is the claims experience of one period.
type Outcome struct {
	Claims int
	Total  float64
}

// Simulate draws claims for policies independent policies. The same inputs and
// the same seeded source always produce the same Outcome.
func Simulate(policies int, p, meanSeverity float64, src rand.Source) (Outcome, error) {
	if err := validate.First(
		validate.NonNegativeInt("policy_count", policies),
		validate.Probability("claim_probability", p),
		validate.Positive("mean_severity", meanSeverity),
	); err != nil {
		return Outcome{}, err
	}
	if src == nil {
		return Outcome{}, fmt.Errorf("%w: random source is nil", validate.ErrInvalidParameter)
	}
	if policies == 0 {
		return Outcome{}, nil
	}

	var n int
	switch p {
	case 0:
	case 1:
		n = policies
	default:
		freq := distuv.Binomial{N: float64(policies), P: p, Src: src}
		n = int(math.Round(freq.Rand()))
	}
	if n == 0 {
		return Outcome{}, nil
	}

	sev := distuv.Exponential{Rate: 1 / meanSeverity, Src: src}
	losses := make([]float64, n)
	for i := range losses {
		losses[i] = sev.Rand()
	}

	return Outcome{Claims: n, Total: floats.Sum(losses)}, nil
}

// SimulateSeeded runs Simulate on a fresh source built from seed.
func SimulateSeeded(policies int, p, meanSeverity float64, seed Seed) (Outcome, error) {
	return Simulate(policies, p, meanSeverity, NewSource(seed))
}
