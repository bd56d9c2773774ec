package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatPeriodOrg renders a PeriodRecord as an Org-mode block for review notes.
// Facts go in the PROPERTIES drawer; the headings below it are left for the
// reader's own commentary.
func FormatPeriodOrg(p PeriodRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Period %d: %s (%s)\n", p.Period, p.Outcome, shortID(p.RunID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":RUN_ID: %s\n", p.RunID)
	fmt.Fprintf(&b, ":PERIOD: %d\n", p.Period)
	fmt.Fprintf(&b, ":TIME: %s\n", p.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":SCENARIO: %s\n", p.Scenario)
	fmt.Fprintf(&b, ":CHOSEN_PREMIUM: %.2f\n", p.ChosenPremium)
	fmt.Fprintf(&b, ":REFERENCE_PREMIUM: %.2f\n", p.ReferencePremium)
	fmt.Fprintf(&b, ":POLICIES: %d\n", p.PolicyCount)
	fmt.Fprintf(&b, ":CLAIMS: %d\n", p.ClaimCount)
	fmt.Fprintf(&b, ":CLAIM_AMOUNT: %.2f\n", p.TotalClaimAmount)
	fmt.Fprintf(&b, ":PREMIUM_INCOME: %.2f\n", p.PremiumIncome)
	fmt.Fprintf(&b, ":EXPENSES: %.2f\n", p.ExpenseAmount)
	fmt.Fprintf(&b, ":UW_RESULT: %.2f\n", p.UnderwritingResult)
	fmt.Fprintf(&b, ":COMBINED_RATIO: %.4f\n", p.CombinedRatio)
	fmt.Fprintf(&b, ":CAPITAL_AFTER: %.2f\n", p.CapitalAfter)
	b.WriteString(":END:\n\n")
	b.WriteString("*** Pricing rationale\n- \n\n")
	b.WriteString("*** What happened\n- \n\n")
	b.WriteString("*** Next period\n- \n")
	return b.String()
}

// FormatPeriodsOrg renders multiple periods separated by blank lines.
func FormatPeriodsOrg(periods []PeriodRecord) string {
	var b strings.Builder
	for i, p := range periods {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatPeriodOrg(p))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
