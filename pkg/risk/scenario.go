package risk

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/pricingsim/pkg/validate"
)

// Scenario is a named claims environment: how often a policy claims and how
// large a claim is on average.
type Scenario struct {
	Name  string // "medium"
	Label string // "Medium claims level"

	ClaimProbability float64 // 0.08
	MeanSeverity     float64 // 25000
}

// ExpectedLoss is the expected claim cost of one policy for one period, which
// is also the technical premium.
func (s Scenario) ExpectedLoss() float64 {
	return s.ClaimProbability * s.MeanSeverity
}

func (s Scenario) Validate() error {
	return validate.First(
		validate.Probability("claim_probability", s.ClaimProbability),
		validate.Positive("mean_severity", s.MeanSeverity),
	)
}

var catalog = []Scenario{
	{Name: "low", Label: "Low claims level", ClaimProbability: 0.05, MeanSeverity: 20000},
	{Name: "medium", Label: "Medium claims level", ClaimProbability: 0.08, MeanSeverity: 25000},
	{Name: "high", Label: "High claims level", ClaimProbability: 0.12, MeanSeverity: 32000},
}

// DefaultScenario is the preset selected when nothing else is chosen.
const DefaultScenario = "medium"

// Catalog returns the presets ordered from lowest to highest expected loss.
func Catalog() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the preset names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a preset by name, case-insensitively.
func Lookup(name string) (Scenario, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range catalog {
		if s.Name == key {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: unknown scenario %q (want one of %s)",
		validate.ErrInvalidParameter, name, strings.Join(Names(), ", "))
}
