package sim

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Snapshot is a point-in-time copy of a Run for display and export.
type Snapshot struct {
	RunID          string         `json:"run_id,omitempty"`
	InitialCapital float64        `json:"initial_capital"`
	Capital        float64        `json:"capital"`
	Period         int            `json:"period"`
	State          string         `json:"state"`
	History        []PeriodResult `json:"history"`
}

func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		InitialCapital: r.initialCapital,
		Capital:        r.capital,
		Period:         r.period,
		State:          r.State().String(),
		History:        r.History(),
	}
}

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot. The result is for
// inspection only; runs are not rebuilt from snapshots.
func ReadSnapshot(rd io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(rd).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
