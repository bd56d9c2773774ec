package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rustyeddy/pricingsim/pkg/report"
	"github.com/rustyeddy/pricingsim/pkg/sim"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a config file",
	Long: `Settle a number of periods at a fixed price and print the period table,
the run summary and advice on the last period.

Example:
  pricingsim run -f simulation.yaml --periods 8 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runConfigPath   string
	runPeriods      int
	runSeed         uint64
	runScenario     string
	runFactor       float64
	runSnapshotPath string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().IntVarP(&runPeriods, "periods", "n", 0, "periods to settle (default run.max_periods)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed for reproducible claims; overrides config")
	runCmd.Flags().StringVar(&runScenario, "scenario", "", "risk scenario; overrides config")
	runCmd.Flags().Float64Var(&runFactor, "factor", 0, "premium as percent of gross; overrides config")
	runCmd.Flags().StringVar(&runSnapshotPath, "snapshot", "", "write the final run snapshot as JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = &runSeed
	}
	if err := applyOverrides(cmd, cfg, runScenario, runFactor); err != nil {
		return err
	}

	periods := runPeriods
	if periods <= 0 {
		periods = cfg.Run.MaxPeriods
	}
	if periods <= 0 {
		return fmt.Errorf("nothing to run: set --periods or run.max_periods")
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	in, err := cfg.Inputs()
	if err != nil {
		return err
	}

	j, err := cfg.OpenJournal()
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	engine, err := sim.NewEngine(cfg.EngineConfig(), j, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %s, premium factor %.0f%%, seed %s\n\n",
		engine.RunID(), in.Scenario.Label, in.Factor, cfg.Seed())

	for i := 0; i < periods; i++ {
		if _, err := engine.Advance(in); err != nil {
			if errors.Is(err, sim.ErrRunComplete) {
				log.Warn().Err(err).Msg("stopping early")
				break
			}
			return err
		}
	}

	run := engine.Run()
	history := run.History()
	if err := report.WriteTable(out, history); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := report.WriteSummary(out, report.Summarize(history, run.InitialCapital())); err != nil {
		return err
	}
	if last, ok := run.Last(); ok {
		fmt.Fprintf(out, "\nLast period: %s\n", report.Coaching(sim.Classify(last)))
	}

	if runSnapshotPath != "" {
		f, err := os.Create(runSnapshotPath)
		if err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		defer f.Close()
		if err := sim.WriteSnapshot(f, engine.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Snapshot written: %s\n", runSnapshotPath)
	}
	return nil
}
