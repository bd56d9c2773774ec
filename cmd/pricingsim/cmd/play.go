package cmd

import (
	"fmt"

	"github.com/rustyeddy/pricingsim/internal/session"
	"github.com/rustyeddy/pricingsim/pkg/sim"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Price interactively, one period at a time",
	Long: `Start an interactive session. Change the price, scenario or loadings
between periods and settle each period with "next". Type "help" for the
command list.

Example:
  pricingsim play -f simulation.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var playConfigPath string

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(playConfigPath)
	if err != nil {
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
	fmt.Fprintf(out, "Pricing game: %s, capital %.0f. Type help for commands.\n", in.Scenario.Label, cfg.Run.InitialCapital)
	return session.New(engine, in, out, log).Run(cmd.Context(), cmd.InOrStdin())
}
