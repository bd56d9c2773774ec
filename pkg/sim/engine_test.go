package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/pricingsim/pkg/claims"
	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/rustyeddy/pricingsim/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingJournal struct {
	journal.Memory
	failPeriods bool
}

func (j *failingJournal) RecordPeriod(p journal.PeriodRecord) error {
	if j.failPeriods {
		return errors.New("disk full")
	}
	return j.Memory.RecordPeriod(p)
}

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func newEngine(t *testing.T, cfg EngineConfig) (*Engine, *journal.Memory) {
	t.Helper()
	if cfg.Clock == nil {
		cfg.Clock = fixedClock()
	}
	j := &journal.Memory{}
	e, err := NewEngine(cfg, j, zerolog.Nop())
	require.NoError(t, err)
	return e, j
}

func inputs(t *testing.T, factor float64) Inputs {
	t.Helper()
	return Inputs{
		Scenario: testScenario(t),
		Loadings: testLoadings,
		Factor:   factor,
		Market:   testMarket,
	}
}

func TestEngineStartRecordsCapital(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1_000_000})

	require.Len(t, j.Capital, 1)
	assert.Equal(t, "start", j.Capital[0].Reason)
	assert.Equal(t, 1_000_000.0, j.Capital[0].Capital)
	assert.Equal(t, e.RunID(), j.Capital[0].RunID)
	assert.Len(t, e.RunID(), 26)
	assert.Equal(t, -1, e.Remaining())
}

func TestEngineAdvanceJournals(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1_000_000, Seed: claims.SeedOf(7)})

	res, err := e.Advance(inputs(t, 100))
	require.NoError(t, err)

	require.Len(t, j.Periods, 1)
	rec := j.Periods[0]
	assert.Equal(t, e.RunID(), rec.RunID)
	assert.Equal(t, 1, rec.Period)
	assert.Equal(t, "medium", rec.Scenario)
	assert.Equal(t, res.PolicyCount, rec.PolicyCount)
	assert.Equal(t, res.UnderwritingResult, rec.UnderwritingResult)
	assert.Equal(t, res.CapitalAfter, rec.CapitalAfter)
	assert.Equal(t, Classify(res).String(), rec.Outcome)
	assert.True(t, rec.Time.Equal(fixedClock()()))

	require.Len(t, j.Capital, 2)
	assert.Equal(t, "settle", j.Capital[1].Reason)
	assert.Equal(t, res.CapitalAfter, j.Capital[1].Capital)
	assert.Equal(t, 1, j.Capital[1].Period)
}

func TestEngineSeededRunsReplay(t *testing.T) {
	t.Parallel()

	a, _ := newEngine(t, EngineConfig{InitialCapital: 1_000_000, Seed: claims.SeedOf(0)})
	b, _ := newEngine(t, EngineConfig{InitialCapital: 1_000_000, Seed: claims.SeedOf(0)})

	for _, f := range []float64{100, 120, 90} {
		ra, err := a.Advance(inputs(t, f))
		require.NoError(t, err)
		rb, err := b.Advance(inputs(t, f))
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
	}

	h := a.Run().History()
	assert.NotEqual(t, h[0].TotalClaimAmount, h[1].TotalClaimAmount)
}

func TestEngineMaxPeriods(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1000, MaxPeriods: 2, Seed: claims.SeedOf(1)})
	assert.Equal(t, 2, e.Remaining())

	for i := 0; i < 2; i++ {
		_, err := e.Advance(inputs(t, 100))
		require.NoError(t, err)
	}
	assert.Equal(t, 0, e.Remaining())

	_, err := e.Advance(inputs(t, 100))
	require.ErrorIs(t, err, ErrRunComplete)
	assert.Equal(t, 2, e.Run().Period())
	assert.Len(t, j.Periods, 2)

	require.NoError(t, e.Reset())
	_, err = e.Advance(inputs(t, 100))
	assert.NoError(t, err)
}

func TestEngineReset(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1000, Seed: claims.SeedOf(3)})
	first := e.RunID()

	_, err := e.Advance(inputs(t, 100))
	require.NoError(t, err)

	require.NoError(t, e.Reset())
	assert.NotEqual(t, first, e.RunID())
	assert.Equal(t, Fresh, e.Run().State())
	assert.Equal(t, 1000.0, e.Run().Capital())

	last := j.Capital[len(j.Capital)-1]
	assert.Equal(t, "reset", last.Reason)
	assert.Equal(t, e.RunID(), last.RunID)
	assert.Equal(t, 0, last.Period)

	snap := e.Snapshot()
	assert.Equal(t, e.RunID(), snap.RunID)
	assert.Equal(t, "fresh", snap.State)
}

func TestEngineRejectsBadInputs(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1000})

	in := inputs(t, -5)
	_, err := e.Advance(in)
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)

	in = inputs(t, 100)
	in.Market.BasePolicies = 0
	_, err = e.Advance(in)
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)

	assert.Equal(t, 0, e.Run().Period())
	assert.Empty(t, j.Periods)

	_, err = NewEngine(EngineConfig{MaxPeriods: -1}, nil, zerolog.Nop())
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)
}

func TestEngineJournalFailure(t *testing.T) {
	t.Parallel()

	j := &failingJournal{failPeriods: true}
	e, err := NewEngine(EngineConfig{InitialCapital: 1000, Seed: claims.SeedOf(1), Clock: fixedClock()}, j, zerolog.Nop())
	require.NoError(t, err)

	res, err := e.Advance(inputs(t, 100))
	require.Error(t, err)
	assert.ErrorContains(t, err, "journal period 1")
	assert.Equal(t, 1, res.Period)
	assert.Equal(t, 1, e.Run().Period())
}

func TestEngineQuote(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1000})

	q, err := e.Quote(inputs(t, 150))
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, q.Decision.TechnicalPremium, 1e-9)
	assert.InDelta(t, 2600.0, q.Decision.GrossPremium, 1e-9)
	assert.InDelta(t, 3900.0, q.Decision.ChosenPremium, 1e-9)
	assert.Equal(t, 1098, q.ExpectedPolicies)
	assert.InDelta(t, 0.5488, q.DemandFactor, 1e-4)
	assert.InDelta(t, 1098*3900.0, q.ExpectedIncome, 1e-6)
	assert.InDelta(t, 1098*2000.0, q.ExpectedClaims, 1e-6)

	assert.Equal(t, Fresh, e.Run().State())
	assert.Empty(t, j.Periods)

	_, err = e.Quote(inputs(t, -1))
	assert.Error(t, err)
}

func TestEngineRejectsRunawayDemand(t *testing.T) {
	t.Parallel()

	e, j := newEngine(t, EngineConfig{InitialCapital: 1000, Seed: claims.SeedOf(1)})

	// free cover to a very elastic market would sell past the policy cap
	in := inputs(t, 0)
	in.Market.PriceSensitivity = 10

	_, err := e.Quote(in)
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)

	_, err = e.Advance(in)
	assert.ErrorIs(t, err, validate.ErrInvalidParameter)
	assert.Equal(t, 0, e.Run().Period())
	assert.Equal(t, 1000.0, e.Run().Capital())
	assert.Empty(t, j.Periods)
}
