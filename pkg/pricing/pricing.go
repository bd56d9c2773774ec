package pricing

import (
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/rustyeddy/pricingsim/pkg/validate"
)

// Loadings are the markups added on top of the technical premium.
type Loadings struct {
	ExpenseRatio float64 // 0.20, share of premium income spent on running the book
	BufferRatio  float64 // 0.10, margin for profit and adverse deviation
}

func (l Loadings) Validate() error {
	return validate.First(
		validate.Ratio("expense_ratio", l.ExpenseRatio),
		validate.Ratio("buffer_ratio", l.BufferRatio),
	)
}

// Markup is the multiplier turning technical premium into gross premium.
func (l Loadings) Markup() float64 {
	return 1 + l.ExpenseRatio + l.BufferRatio
}

// Decision is the set of premiums in play for one period.
type Decision struct {
	TechnicalPremium float64
	GrossPremium     float64 // demand reference point
	ChosenPremium    float64 // price actually charged
	Factor           float64 // ChosenPremium as percent of GrossPremium
}

func (d Decision) Validate() error {
	return validate.First(
		validate.NonNegative("technical_premium", d.TechnicalPremium),
		validate.NonNegative("gross_premium", d.GrossPremium),
		validate.NonNegative("chosen_premium", d.ChosenPremium),
	)
}

// TechnicalPremium is the expected claim cost per policy.
func TechnicalPremium(s risk.Scenario) float64 {
	return s.ExpectedLoss()
}

// GrossPremium loads the technical premium with expense and buffer.
func GrossPremium(technical float64, l Loadings) float64 {
	return technical * l.Markup()
}

// Derive computes the decision for a scenario, loadings and a premium factor
// given in percent of gross premium (100 charges exactly gross). It keeps no
// state and is meant to be called whenever any input changes.
func Derive(s risk.Scenario, l Loadings, factorPct float64) (Decision, error) {
	if err := validate.First(
		s.Validate(),
		l.Validate(),
		validate.NonNegative("premium_factor", factorPct),
	); err != nil {
		return Decision{}, err
	}

	technical := TechnicalPremium(s)
	gross := GrossPremium(technical, l)

	return Decision{
		TechnicalPremium: technical,
		GrossPremium:     gross,
		ChosenPremium:    gross * (factorPct / 100),
		Factor:           factorPct,
	}, nil
}
