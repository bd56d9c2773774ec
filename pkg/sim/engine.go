package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/pricingsim/pkg/claims"
	"github.com/rustyeddy/pricingsim/pkg/demand"
	"github.com/rustyeddy/pricingsim/pkg/id"
	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/rustyeddy/pricingsim/pkg/pricing"
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/rustyeddy/pricingsim/pkg/validate"
)

// ErrRunComplete is returned by Advance once MaxPeriods periods have settled.
var ErrRunComplete = errors.New("run complete")

// Inputs is everything a caller chooses for one period.
type Inputs struct {
	Scenario risk.Scenario
	Loadings pricing.Loadings
	Factor   float64 // chosen premium, percent of gross premium
	Market   demand.Market
}

type EngineConfig struct {
	InitialCapital float64
	Seed           claims.Seed
	MaxPeriods     int              // 0 means no cap
	Clock          func() time.Time // defaults to time.Now
}

// Quote is what a period would look like before going to market.
type Quote struct {
	Decision         pricing.Decision
	DemandFactor     float64
	ExpectedPolicies int
	ExpectedIncome   float64
	ExpectedClaims   float64 // policies * technical premium
}

// Engine drives one Run and reports every settlement to a journal and a logger.
// Like Run, an Engine belongs to a single caller.
type Engine struct {
	run     *Run
	runID   string
	cfg     EngineConfig
	journal journal.Journal
	log     zerolog.Logger
}

func NewEngine(cfg EngineConfig, j journal.Journal, log zerolog.Logger) (*Engine, error) {
	if err := validate.NonNegativeInt("max_periods", cfg.MaxPeriods); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if j == nil {
		j = journal.Discard()
	}

	e := &Engine{
		run:     NewRun(cfg.InitialCapital),
		runID:   id.At(cfg.Clock().UTC()),
		cfg:     cfg,
		journal: j,
		log:     log.With().Str("component", "engine").Logger(),
	}

	if err := e.recordCapital("start"); err != nil {
		return nil, err
	}
	e.log.Info().
		Str("run_id", e.runID).
		Float64("capital", cfg.InitialCapital).
		Stringer("seed", cfg.Seed).
		Int("max_periods", cfg.MaxPeriods).
		Msg("run started")

	return e, nil
}

func (e *Engine) Run() *Run { return e.run }
func (e *Engine) RunID() string { return e.runID }
func (e *Engine) MaxPeriods() int { return e.cfg.MaxPeriods }

// Snapshot is the run's snapshot tagged with the run ID.
func (e *Engine) Snapshot() Snapshot {
	s := e.run.Snapshot()
	s.RunID = e.runID
	return s
}

// Remaining reports how many periods can still be settled, or -1 when the run
// has no cap.
func (e *Engine) Remaining() int {
	if e.cfg.MaxPeriods == 0 {
		return -1
	}
	return e.cfg.MaxPeriods - e.run.Period()
}

// Quote derives the pricing decision and the demand it implies without
// touching the run.
func (e *Engine) Quote(in Inputs) (Quote, error) {
	d, err := pricing.Derive(in.Scenario, in.Loadings, in.Factor)
	if err != nil {
		return Quote{}, err
	}
	n, err := in.Market.PolicyCount(d.ChosenPremium, d.GrossPremium)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Decision:         d,
		DemandFactor:     demand.Factor(d.ChosenPremium, d.GrossPremium, in.Market.PriceSensitivity),
		ExpectedPolicies: n,
		ExpectedIncome:   float64(n) * d.ChosenPremium,
		ExpectedClaims:   float64(n) * d.TechnicalPremium,
	}, nil
}

// Advance settles the next period. Journal errors are returned after the run
// has advanced; the settlement itself stands.
func (e *Engine) Advance(in Inputs) (PeriodResult, error) {
	if e.cfg.MaxPeriods > 0 && e.run.Period() >= e.cfg.MaxPeriods {
		return PeriodResult{}, fmt.Errorf("%w: %d of %d periods settled", ErrRunComplete, e.run.Period(), e.cfg.MaxPeriods)
	}

	d, err := pricing.Derive(in.Scenario, in.Loadings, in.Factor)
	if err != nil {
		return PeriodResult{}, err
	}

	src := claims.NewSource(e.cfg.Seed.Derive(uint64(e.run.Period() + 1)))
	res, err := e.run.Settle(d, in.Scenario, in.Loadings, in.Market, src)
	if err != nil {
		e.log.Warn().Err(err).Str("run_id", e.runID).Msg("settlement rejected")
		return PeriodResult{}, err
	}

	outcome := Classify(res)
	e.log.Info().
		Str("run_id", e.runID).
		Int("period", res.Period).
		Str("scenario", res.Scenario).
		Float64("premium", res.ChosenPremium).
		Int("policies", res.PolicyCount).
		Int("claims", res.ClaimCount).
		Float64("uw_result", res.UnderwritingResult).
		Float64("combined_ratio", res.CombinedRatio).
		Float64("capital", res.CapitalAfter).
		Stringer("outcome", outcome).
		Msg("period settled")

	err = e.journal.RecordPeriod(journal.PeriodRecord{
		RunID:              e.runID,
		Period:             res.Period,
		Time:               e.cfg.Clock(),
		Scenario:           res.Scenario,
		ChosenPremium:      res.ChosenPremium,
		ReferencePremium:   res.ReferencePremium,
		PolicyCount:        res.PolicyCount,
		ClaimCount:         res.ClaimCount,
		TotalClaimAmount:   res.TotalClaimAmount,
		PremiumIncome:      res.PremiumIncome,
		ExpenseAmount:      res.ExpenseAmount,
		UnderwritingResult: res.UnderwritingResult,
		CombinedRatio:      res.CombinedRatio,
		CapitalAfter:       res.CapitalAfter,
		Outcome:            outcome.String(),
	})
	if err != nil {
		return res, fmt.Errorf("journal period %d: %w", res.Period, err)
	}
	if err := e.recordCapital("settle"); err != nil {
		return res, err
	}
	return res, nil
}

// Reset returns the run to its initial state under a new run ID.
func (e *Engine) Reset() error {
	prev := e.runID
	e.run.Reset()
	e.runID = id.At(e.cfg.Clock().UTC())

	e.log.Info().Str("run_id", e.runID).Str("previous_run_id", prev).Msg("run reset")
	return e.recordCapital("reset")
}

func (e *Engine) recordCapital(reason string) error {
	err := e.journal.RecordCapital(journal.CapitalSnapshot{
		RunID:   e.runID,
		Time:    e.cfg.Clock(),
		Period:  e.run.Period(),
		Capital: e.run.Capital(),
		Reason:  reason,
	})
	if err != nil {
		return fmt.Errorf("journal capital (%s): %w", reason, err)
	}
	return nil
}
