package journal

// Memory keeps records in slices. Handy for tests and interactive sessions
// that don't want files.
type Memory struct {
	Periods []PeriodRecord
	Capital []CapitalSnapshot
	Closed  bool
}

func (m *Memory) RecordPeriod(p PeriodRecord) error {
	m.Periods = append(m.Periods, p)
	return nil
}

func (m *Memory) RecordCapital(c CapitalSnapshot) error {
	m.Capital = append(m.Capital, c)
	return nil
}

func (m *Memory) Close() error {
	m.Closed = true
	return nil
}

type discard struct{}

func (discard) RecordPeriod(PeriodRecord) error { return nil }
func (discard) RecordCapital(CapitalSnapshot) error { return nil }
func (discard) Close() error { return nil }

// Discard returns a Journal that drops everything.
func Discard() Journal { return discard{} }
