package sim

import (
	"math/rand/v2"

	"github.com/rustyeddy/pricingsim/pkg/claims"
	"github.com/rustyeddy/pricingsim/pkg/demand"
	"github.com/rustyeddy/pricingsim/pkg/pricing"
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/rustyeddy/pricingsim/pkg/validate"
)

// PeriodResult is the settlement of one pricing period. It is never modified
// once appended to a run's history.
type PeriodResult struct {
	Period int `json:"period"`

	Scenario         string  `json:"scenario"`
	ChosenPremium    float64 `json:"chosen_premium"`
	ReferencePremium float64 `json:"reference_premium"`

	PolicyCount        int     `json:"policy_count"`
	ClaimCount         int     `json:"claim_count"`
	TotalClaimAmount   float64 `json:"total_claim_amount"`
	PremiumIncome      float64 `json:"premium_income"`
	ExpenseAmount      float64 `json:"expense_amount"`
	UnderwritingResult float64 `json:"underwriting_result"`
	CombinedRatio      float64 `json:"combined_ratio"`
	CapitalAfter       float64 `json:"capital_after"`
}

// HasExposure reports whether any premium was written. Without exposure the
// combined ratio is reported as 0 and says nothing about profitability.
func (r PeriodResult) HasExposure() bool {
	return r.PremiumIncome > 0
}

// TechnicalProfit is the raw CombinedRatio < 1 test. It is also true for a
// period with no sales; check HasExposure or use Classify.
func (r PeriodResult) TechnicalProfit() bool {
	return r.CombinedRatio < 1
}

// State is the observable lifecycle state of a Run.
type State int

const (
	Fresh State = iota
	Advanced
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "advanced"
}

// Run holds the capital and history of one simulation. A Run is owned by a
// single caller and does no locking.
type Run struct {
	initialCapital float64
	capital        float64
	period         int
	history        []PeriodResult
}

// NewRun starts a Fresh run.
func NewRun(initialCapital float64) *Run {
	return &Run{initialCapital: initialCapital, capital: initialCapital}
}

func (r *Run) InitialCapital() float64 { return r.initialCapital }
func (r *Run) Capital() float64 { return r.capital }
func (r *Run) Period() int { return r.period }

func (r *Run) State() State {
	if len(r.history) == 0 {
		return Fresh
	}
	return Advanced
}

// History returns a copy of the settled periods in order.
func (r *Run) History() []PeriodResult {
	out := make([]PeriodResult, len(r.history))
	copy(out, r.history)
	return out
}

// Last returns the most recent period, if any.
func (r *Run) Last() (PeriodResult, bool) {
	if len(r.history) == 0 {
		return PeriodResult{}, false
	}
	return r.history[len(r.history)-1], true
}

// Reset discards the history and restores the initial capital.
func (r *Run) Reset() {
	r.capital = r.initialCapital
	r.period = 0
	r.history = nil
}

// Settle prices one period: demand at the chosen premium against the gross
// premium, claims on the policies sold, and the resulting underwriting result
// added to capital. Every input is checked and both draws are made before the
// run changes, so a failed Settle leaves the run untouched.
func (r *Run) Settle(d pricing.Decision, s risk.Scenario, l pricing.Loadings, m demand.Market, src rand.Source) (PeriodResult, error) {
	if err := validate.First(d.Validate(), s.Validate(), l.Validate(), m.Validate()); err != nil {
		return PeriodResult{}, err
	}

	policies, err := m.PolicyCount(d.ChosenPremium, d.GrossPremium)
	if err != nil {
		return PeriodResult{}, err
	}

	out, err := claims.Simulate(policies, s.ClaimProbability, s.MeanSeverity, src)
	if err != nil {
		return PeriodResult{}, err
	}

	income := float64(policies) * d.ChosenPremium
	expense := income * l.ExpenseRatio
	uw := income - out.Total - expense

	var cr float64
	if income > 0 {
		cr = (out.Total + expense) / income
	}

	r.capital += uw
	r.period++

	res := PeriodResult{
		Period:             r.period,
		Scenario:           s.Name,
		ChosenPremium:      d.ChosenPremium,
		ReferencePremium:   d.GrossPremium,
		PolicyCount:        policies,
		ClaimCount:         out.Claims,
		TotalClaimAmount:   out.Total,
		PremiumIncome:      income,
		ExpenseAmount:      expense,
		UnderwritingResult: uw,
		CombinedRatio:      cr,
		CapitalAfter:       r.capital,
	}
	r.history = append(r.history, res)

	return res, nil
}
