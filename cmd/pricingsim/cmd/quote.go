package cmd

import (
	"fmt"

	"github.com/rustyeddy/pricingsim/internal/config"
	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/rustyeddy/pricingsim/pkg/report"
	"github.com/rustyeddy/pricingsim/pkg/sim"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show premiums and expected demand without settling",
	Long: `Derive the technical, gross and chosen premium for a scenario and show the
policy count the market would buy at that price.

Example:
  pricingsim quote --scenario high --factor 110`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

var (
	quoteConfigPath string
	quoteScenario   string
	quoteFactor     float64
)

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	quoteCmd.Flags().StringVar(&quoteScenario, "scenario", "", "risk scenario; overrides config")
	quoteCmd.Flags().Float64Var(&quoteFactor, "factor", 0, "premium as percent of gross; overrides config")
}

// applyOverrides copies the scenario and factor flags that were set into cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, scenario string, factor float64) error {
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = scenario
	}
	if cmd.Flags().Changed("factor") {
		cfg.Pricing.PremiumFactor = factor
	}
	return cfg.Validate()
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(quoteConfigPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg, quoteScenario, quoteFactor); err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}
	engine, err := sim.NewEngine(cfg.EngineConfig(), journal.Discard(), log)
	if err != nil {
		return err
	}
	q, err := engine.Quote(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scenario:          %s\n", in.Scenario.Label)
	fmt.Fprintf(out, "Technical premium: %s\n", report.FormatMoney(q.Decision.TechnicalPremium))
	fmt.Fprintf(out, "Gross premium:     %s\n", report.FormatMoney(q.Decision.GrossPremium))
	fmt.Fprintf(out, "Chosen premium:    %s (%.0f%% of gross)\n", report.FormatMoney(q.Decision.ChosenPremium), q.Decision.Factor)
	fmt.Fprintf(out, "Demand factor:     %.3f\n", q.DemandFactor)
	fmt.Fprintf(out, "Expected policies: %d\n", q.ExpectedPolicies)
	fmt.Fprintf(out, "Expected income:   %s\n", report.FormatMoney(q.ExpectedIncome))
	fmt.Fprintf(out, "Expected claims:   %s\n", report.FormatMoney(q.ExpectedClaims))
	return nil
}
