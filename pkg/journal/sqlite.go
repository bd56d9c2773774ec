package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordPeriod(p PeriodRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO periods
		(run_id, period, time, scenario, chosen_premium, reference_premium,
		 policy_count, claim_count, total_claim_amount, premium_income, expense_amount,
		 underwriting_result, combined_ratio, capital_after, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.RunID, p.Period, p.Time, p.Scenario, p.ChosenPremium, p.ReferencePremium,
		p.PolicyCount, p.ClaimCount, p.TotalClaimAmount, p.PremiumIncome, p.ExpenseAmount,
		p.UnderwritingResult, p.CombinedRatio, p.CapitalAfter, p.Outcome,
	)
	return err
}

func (j *SQLite) RecordCapital(c CapitalSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO capital
		(run_id, time, period, capital, reason)
		VALUES (?, ?, ?, ?, ?)`,
		c.RunID, c.Time, c.Period, c.Capital, c.Reason,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
