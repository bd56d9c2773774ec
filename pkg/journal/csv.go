package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	periodHeader  = []string{"run_id", "period", "time", "scenario", "chosen_premium", "reference_premium", "policy_count", "claim_count", "total_claim_amount", "premium_income", "expense_amount", "underwriting_result", "combined_ratio", "capital_after", "outcome"}
	capitalHeader = []string{"run_id", "time", "period", "capital", "reason"}
)

type CSV struct {
	periods *csv.Writer
	capital *csv.Writer
	pf, cf  *os.File
}

func NewCSV(periodsPath, capitalPath string) (*CSV, error) {
	pf, err := os.Create(periodsPath)
	if err != nil {
		return nil, err
	}
	cf, err := os.Create(capitalPath)
	if err != nil {
		_ = pf.Close()
		return nil, err
	}

	j := &CSV{periods: csv.NewWriter(pf), capital: csv.NewWriter(cf), pf: pf, cf: cf}

	if err := j.write(j.periods, periodHeader); err != nil {
		_ = j.closeFiles()
		return nil, err
	}
	if err := j.write(j.capital, capitalHeader); err != nil {
		_ = j.closeFiles()
		return nil, err
	}
	return j, nil
}

func (j *CSV) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSV) RecordPeriod(p PeriodRecord) error {
	return j.write(j.periods, []string{
		p.RunID,
		strconv.Itoa(p.Period),
		p.Time.Format(time.RFC3339),
		p.Scenario,
		f(p.ChosenPremium),
		f(p.ReferencePremium),
		strconv.Itoa(p.PolicyCount),
		strconv.Itoa(p.ClaimCount),
		f(p.TotalClaimAmount),
		f(p.PremiumIncome),
		f(p.ExpenseAmount),
		f(p.UnderwritingResult),
		f(p.CombinedRatio),
		f(p.CapitalAfter),
		p.Outcome,
	})
}

func (j *CSV) RecordCapital(c CapitalSnapshot) error {
	return j.write(j.capital, []string{
		c.RunID,
		c.Time.Format(time.RFC3339),
		strconv.Itoa(c.Period),
		f(c.Capital),
		c.Reason,
	})
}

func (j *CSV) Close() error {
	j.periods.Flush()
	if err := j.periods.Error(); err != nil {
		return err
	}
	j.capital.Flush()
	if err := j.capital.Error(); err != nil {
		return err
	}
	return j.closeFiles()
}

func (j *CSV) closeFiles() error {
	if err := j.pf.Close(); err != nil {
		return err
	}
	return j.cf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
