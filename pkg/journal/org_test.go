package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPeriodOrg(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3*3600))
	out := FormatPeriodOrg(samplePeriod("01HZZZABCDEFGHJKMNPQRSTVWX", 3, at))

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "** Period 3: profitable (01HZZZAB)", lines[0])
	assert.Contains(t, out, ":RUN_ID: 01HZZZABCDEFGHJKMNPQRSTVWX\n")
	assert.Contains(t, out, ":TIME: 2024-05-06T04:08:09Z\n")
	assert.Contains(t, out, ":POLICIES: 2000\n")
	assert.Contains(t, out, ":COMBINED_RATIO: 0.9716\n")
	assert.Contains(t, out, ":UW_RESULT: 147654.50\n")
	assert.Contains(t, out, ":END:\n")
	assert.Contains(t, out, "*** Next period\n")
}

func TestFormatPeriodsOrg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FormatPeriodsOrg(nil))

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	out := FormatPeriodsOrg([]PeriodRecord{samplePeriod("R", 1, at), samplePeriod("R", 2, at)})
	assert.Equal(t, 2, strings.Count(out, ":PROPERTIES:"))
	assert.Contains(t, out, "** Period 1: profitable (R)")
	assert.Contains(t, out, "\n\n\n** Period 2")
}

func TestMemoryAndDiscard(t *testing.T) {
	t.Parallel()

	m := &Memory{}
	var j Journal = m
	require.NoError(t, j.RecordPeriod(PeriodRecord{Period: 1}))
	require.NoError(t, j.RecordCapital(CapitalSnapshot{Capital: 5}))
	require.NoError(t, j.Close())
	assert.Len(t, m.Periods, 1)
	assert.Len(t, m.Capital, 1)
	assert.True(t, m.Closed)

	d := Discard()
	assert.NoError(t, d.RecordPeriod(PeriodRecord{}))
	assert.NoError(t, d.RecordCapital(CapitalSnapshot{}))
	assert.NoError(t, d.Close())
}
