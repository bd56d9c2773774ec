// Package session runs the interactive pricing loop: one command per line,
// each period settled on request.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/pricingsim/pkg/report"
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/rustyeddy/pricingsim/pkg/sim"
)

const Prompt = "> "

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Session holds the inputs the player has chosen so far. Changes apply from
// the next settled period.
type Session struct {
	engine *sim.Engine
	inputs sim.Inputs
	out    io.Writer
	log    zerolog.Logger
}

func New(e *sim.Engine, in sim.Inputs, out io.Writer, log zerolog.Logger) *Session {
	return &Session{
		engine: e,
		inputs: in,
		out:    out,
		log:    log.With().Str("component", "session").Logger(),
	}
}

// Inputs returns the inputs the next period will settle with.
func (s *Session) Inputs() sim.Inputs { return s.inputs }

// Run reads commands from r until quit, EOF or ctx is done. Command errors are
// printed and the loop continues; only read errors end it early.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	fmt.Fprint(s.out, Prompt)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := s.Exec(sc.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		fmt.Fprint(s.out, Prompt)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	fmt.Fprintln(s.out)
	return nil
}

// Exec runs a single command line.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s.log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

	switch cmd {
	case "next", "n":
		return s.next(args)
	case "quote", "q":
		return s.quote()
	case "factor", "f":
		return s.setFactor(args)
	case "scenario":
		return s.setScenario(args)
	case "expense":
		return s.setLoading(args, func(v float64) { s.inputs.Loadings.ExpenseRatio = v })
	case "buffer":
		return s.setLoading(args, func(v float64) { s.inputs.Loadings.BufferRatio = v })
	case "reset":
		if err := s.engine.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Run reset. Capital %s.\n", report.FormatMoney(s.engine.Run().Capital()))
		return nil
	case "status", "s":
		return s.status()
	case "history", "h":
		return s.history()
	case "help", "?":
		s.help()
		return nil
	case "quit", "exit":
		return ErrQuit
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *Session) next(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("next: want a positive period count, got %q", args[0])
		}
		n = v
	}

	for i := 0; i < n; i++ {
		res, err := s.engine.Advance(s.inputs)
		if err != nil {
			if errors.Is(err, sim.ErrRunComplete) {
				return err
			}
			// a journal failure still settles the period
			if res.Period == 0 {
				return err
			}
			s.printResult(res)
			return err
		}
		s.printResult(res)
	}
	return nil
}

func (s *Session) printResult(r sim.PeriodResult) {
	o := sim.Classify(r)
	fmt.Fprintf(s.out, "Period %d: premium %s, %d policies, %d claims (%s), UW result %s, combined ratio %s, capital %s\n",
		r.Period,
		report.FormatMoney(r.ChosenPremium),
		r.PolicyCount,
		r.ClaimCount,
		report.FormatMoney(r.TotalClaimAmount),
		report.FormatMoney(r.UnderwritingResult),
		report.FormatRatio(r),
		report.FormatMoney(r.CapitalAfter),
	)
	fmt.Fprintf(s.out, "  %s: %s\n", o, report.Coaching(o))
}

func (s *Session) quote() error {
	q, err := s.engine.Quote(s.inputs)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Technical %s, gross %s, chosen %s (%.0f%%). Expect %d policies, income %s.\n",
		report.FormatMoney(q.Decision.TechnicalPremium),
		report.FormatMoney(q.Decision.GrossPremium),
		report.FormatMoney(q.Decision.ChosenPremium),
		q.Decision.Factor,
		q.ExpectedPolicies,
		report.FormatMoney(q.ExpectedIncome),
	)
	return nil
}

func (s *Session) setFactor(args []string) error {
	v, err := percentArg("factor", args)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("factor: must not be negative, got %v", v)
	}
	s.inputs.Factor = v
	return s.quote()
}

func (s *Session) setScenario(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("scenario: want one of %s", strings.Join(risk.Names(), ", "))
	}
	sc, err := risk.Lookup(args[0])
	if err != nil {
		return err
	}
	s.inputs.Scenario = sc
	fmt.Fprintf(s.out, "Scenario %s: claim probability %s, mean severity %s.\n",
		sc.Label, report.FormatPct(sc.ClaimProbability), report.FormatMoney(sc.MeanSeverity))
	return nil
}

// setLoading applies a percentage to a copy of the loadings and keeps it only
// if the result validates.
func (s *Session) setLoading(args []string, set func(float64)) error {
	v, err := percentArg("loading", args)
	if err != nil {
		return err
	}
	prev := s.inputs.Loadings
	set(v / 100)
	if err := s.inputs.Loadings.Validate(); err != nil {
		s.inputs.Loadings = prev
		return err
	}
	return s.quote()
}

func (s *Session) status() error {
	run := s.engine.Run()
	fmt.Fprintf(s.out, "Run %s: period %d (%s), capital %s",
		s.engine.RunID(), run.Period(), run.State(), report.FormatMoney(run.Capital()))
	if left := s.engine.Remaining(); left >= 0 {
		fmt.Fprintf(s.out, ", %d periods left", left)
	}
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Scenario %s, expenses %s, buffer %s, factor %.0f%%\n",
		s.inputs.Scenario.Name,
		report.FormatPct(s.inputs.Loadings.ExpenseRatio),
		report.FormatPct(s.inputs.Loadings.BufferRatio),
		s.inputs.Factor,
	)
	return s.quote()
}

func (s *Session) history() error {
	run := s.engine.Run()
	h := run.History()
	if len(h) == 0 {
		fmt.Fprintln(s.out, "No periods settled yet.")
		return nil
	}
	if err := report.WriteTable(s.out, h); err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return report.WriteSummary(s.out, report.Summarize(h, run.InitialCapital()))
}

func (s *Session) help() {
	fmt.Fprint(s.out, `Commands:
  next [n]          settle the next period (or n periods)
  quote             show the current price and expected demand
  factor <pct>      set the chosen premium as a percent of gross
  scenario <name>   switch risk scenario (`+strings.Join(risk.Names(), ", ")+`)
  expense <pct>     set the expense loading
  buffer <pct>      set the risk buffer loading
  reset             start over with the initial capital
  status            show run state and current inputs
  history           show the period table and run summary
  quit              leave
`)
}

func percentArg(name string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: want one number", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, args[0])
	}
	return v, nil
}
