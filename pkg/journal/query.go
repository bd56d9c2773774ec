package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const periodColumns = `run_id, period, time, scenario, chosen_premium, reference_premium,
	policy_count, claim_count, total_claim_amount, premium_income, expense_amount,
	underwriting_result, combined_ratio, capital_after, outcome`

type scanner interface {
	Scan(dest ...any) error
}

func scanPeriod(s scanner) (PeriodRecord, error) {
	var rec PeriodRecord
	err := s.Scan(
		&rec.RunID,
		&rec.Period,
		&rec.Time,
		&rec.Scenario,
		&rec.ChosenPremium,
		&rec.ReferencePremium,
		&rec.PolicyCount,
		&rec.ClaimCount,
		&rec.TotalClaimAmount,
		&rec.PremiumIncome,
		&rec.ExpenseAmount,
		&rec.UnderwritingResult,
		&rec.CombinedRatio,
		&rec.CapitalAfter,
		&rec.Outcome,
	)
	return rec, err
}

// RunSummary is one row of ListRuns.
type RunSummary struct {
	RunID        string
	Periods      int
	FirstTime    time.Time
	LastTime     time.Time
	FinalCapital float64
}

// GetPeriod returns a single settled period of a run.
func (j *SQLite) GetPeriod(runID string, period int) (PeriodRecord, error) {
	row := j.db.QueryRow(`SELECT `+periodColumns+`
		FROM periods
		WHERE run_id = ? AND period = ?`, runID, period)

	rec, err := scanPeriod(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PeriodRecord{}, fmt.Errorf("period %d of run %q not found", period, runID)
		}
		return PeriodRecord{}, err
	}
	return rec, nil
}

// ListPeriods returns the periods of a run in settlement order.
func (j *SQLite) ListPeriods(runID string) ([]PeriodRecord, error) {
	rows, err := j.db.Query(`SELECT `+periodColumns+`
		FROM periods
		WHERE run_id = ?
		ORDER BY period ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PeriodRecord
	for rows.Next() {
		rec, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCapital returns the capital snapshots of a run in time order.
func (j *SQLite) ListCapital(runID string) ([]CapitalSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, period, capital, reason
		FROM capital
		WHERE run_id = ?
		ORDER BY time ASC, rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CapitalSnapshot
	for rows.Next() {
		var c CapitalSnapshot
		if err := rows.Scan(&c.RunID, &c.Time, &c.Period, &c.Capital, &c.Reason); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRuns summarizes every run that settled at least one period, newest first.
func (j *SQLite) ListRuns() ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT p.run_id, COUNT(*), MIN(p.time), MAX(p.time),
			(SELECT capital_after FROM periods l
			 WHERE l.run_id = p.run_id ORDER BY l.period DESC LIMIT 1)
		FROM periods p
		GROUP BY p.run_id
		ORDER BY MAX(p.time) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs          RunSummary
			first, last string
		)
		if err := rows.Scan(&rs.RunID, &rs.Periods, &first, &last, &rs.FinalCapital); err != nil {
			return nil, err
		}
		rs.FirstTime = parseSQLiteTime(first)
		rs.LastTime = parseSQLiteTime(last)
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Aggregates lose the DATETIME column type, so the driver hands back text.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
