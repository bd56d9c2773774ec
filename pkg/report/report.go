// Package report turns a run's history into the numbers and tables shown to
// the person pricing.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rustyeddy/pricingsim/pkg/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run's history.
type Summary struct {
	Periods        int
	ExposedPeriods int // periods with premium income
	Profitable     int

	Policies      int
	Claims        int
	PremiumIncome float64
	ClaimAmount   float64
	Expenses      float64
	UWResult      float64

	LossRatio           float64 // claims / premium over the whole run, 0 without income
	MeanCombinedRatio   float64 // over exposed periods
	StdDevCombinedRatio float64 // over exposed periods, 0 with fewer than two

	StartCapital float64
	EndCapital   float64
}

// CapitalChange is EndCapital - StartCapital.
func (s Summary) CapitalChange() float64 {
	return s.EndCapital - s.StartCapital
}

// Summarize aggregates history. startCapital is the capital before the first
// period.
func Summarize(history []sim.PeriodResult, startCapital float64) Summary {
	s := Summary{Periods: len(history), StartCapital: startCapital, EndCapital: startCapital}
	if len(history) == 0 {
		return s
	}

	income := make([]float64, len(history))
	losses := make([]float64, len(history))
	expenses := make([]float64, len(history))
	uw := make([]float64, len(history))
	var ratios []float64

	for i, r := range history {
		income[i] = r.PremiumIncome
		losses[i] = r.TotalClaimAmount
		expenses[i] = r.ExpenseAmount
		uw[i] = r.UnderwritingResult
		s.Policies += r.PolicyCount
		s.Claims += r.ClaimCount

		if r.HasExposure() {
			s.ExposedPeriods++
			ratios = append(ratios, r.CombinedRatio)
		}
		if sim.Classify(r) == sim.Profitable {
			s.Profitable++
		}
	}

	s.PremiumIncome = floats.Sum(income)
	s.ClaimAmount = floats.Sum(losses)
	s.Expenses = floats.Sum(expenses)
	s.UWResult = floats.Sum(uw)
	s.EndCapital = history[len(history)-1].CapitalAfter

	if s.PremiumIncome > 0 {
		s.LossRatio = s.ClaimAmount / s.PremiumIncome
	}
	if len(ratios) > 0 {
		s.MeanCombinedRatio = stat.Mean(ratios, nil)
	}
	if len(ratios) > 1 {
		s.StdDevCombinedRatio = stat.StdDev(ratios, nil)
	}
	return s
}

// FormatMoney renders an amount with thousands separators and no decimals.
func FormatMoney(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprint(x)
	}
	return humanize.Commaf(math.Round(x))
}

// FormatPct renders a ratio as a percentage with one decimal.
func FormatPct(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

// FormatRatio renders a combined ratio, or "n/a" when the period had no income.
func FormatRatio(r sim.PeriodResult) string {
	if !r.HasExposure() {
		return "n/a"
	}
	return FormatPct(r.CombinedRatio)
}

// WriteTable writes the period table.
func WriteTable(w io.Writer, history []sim.PeriodResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tPremium\tPolicies\tClaims\tClaim amount\tPremium income\tExpenses\tUW result\tCombined ratio\tCapital\tOutcome\t")
	for _, r := range history {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Period,
			FormatMoney(r.ChosenPremium),
			r.PolicyCount,
			r.ClaimCount,
			FormatMoney(r.TotalClaimAmount),
			FormatMoney(r.PremiumIncome),
			FormatMoney(r.ExpenseAmount),
			FormatMoney(r.UnderwritingResult),
			FormatRatio(r),
			FormatMoney(r.CapitalAfter),
			sim.Classify(r),
		)
	}
	return tw.Flush()
}

// WriteSummary writes the run totals.
func WriteSummary(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Periods\t%d (%d with sales, %d profitable)\n", s.Periods, s.ExposedPeriods, s.Profitable)
	fmt.Fprintf(tw, "Policies written\t%s\n", humanize.Comma(int64(s.Policies)))
	fmt.Fprintf(tw, "Claims\t%s\n", humanize.Comma(int64(s.Claims)))
	fmt.Fprintf(tw, "Premium income\t%s\n", FormatMoney(s.PremiumIncome))
	fmt.Fprintf(tw, "Claim amount\t%s\n", FormatMoney(s.ClaimAmount))
	fmt.Fprintf(tw, "Expenses\t%s\n", FormatMoney(s.Expenses))
	fmt.Fprintf(tw, "UW result\t%s\n", FormatMoney(s.UWResult))
	fmt.Fprintf(tw, "Loss ratio\t%s\n", FormatPct(s.LossRatio))
	fmt.Fprintf(tw, "Combined ratio\t%s mean, %s std dev\n", FormatPct(s.MeanCombinedRatio), FormatPct(s.StdDevCombinedRatio))
	fmt.Fprintf(tw, "Capital\t%s -> %s (%s)\n", FormatMoney(s.StartCapital), FormatMoney(s.EndCapital), FormatMoney(s.CapitalChange()))
	return tw.Flush()
}

// Coaching is the one-line advice for a period outcome.
func Coaching(o sim.Outcome) string {
	switch o {
	case sim.Profitable:
		return "Technical profit. A small price cut could win more policies."
	case sim.MarginalLoss:
		return "Small technical loss. Nudge the premium up or trim expenses."
	case sim.SevereLoss:
		return "Heavy technical loss. Raise the premium or revisit expenses before the next period."
	case sim.NoSales:
		return "No premium was written. The price is outside what the market accepts."
	}
	return ""
}
