package journal

import "time"

// PeriodRecord is one settled pricing period.
type PeriodRecord struct {
	RunID    string
	Period   int
	Time     time.Time
	Scenario string

	ChosenPremium    float64
	ReferencePremium float64

	PolicyCount        int
	ClaimCount         int
	TotalClaimAmount   float64
	PremiumIncome      float64
	ExpenseAmount      float64
	UnderwritingResult float64
	CombinedRatio      float64
	CapitalAfter       float64

	Outcome string // "profitable", "marginal_loss", "severe_loss", "no_sales"
}

// CapitalSnapshot is the run's capital at a point in time.
type CapitalSnapshot struct {
	RunID   string
	Time    time.Time
	Period  int
	Capital float64
	Reason  string // "settle", "reset", "start"
}

type Journal interface {
	RecordPeriod(PeriodRecord) error
	RecordCapital(CapitalSnapshot) error
	Close() error
}
