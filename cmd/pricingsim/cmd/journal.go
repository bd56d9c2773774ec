package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/rustyeddy/pricingsim/pkg/report"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the period journal",
	Long: `Query and display settled periods from the SQLite journal.

Subcommands:
  runs            - List journaled runs
  periods <run>   - Show the period table of a run
  org <run>       - Render a run's periods as Org-mode review notes

Examples:
  pricingsim journal runs
  pricingsim journal periods 01HZX3...
  pricingsim journal org 01HZX3... > review.org`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalPeriodsCmd = &cobra.Command{
	Use:   "periods <run-id>",
	Short: "Show the periods of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalPeriods,
}

var journalOrgCmd = &cobra.Command{
	Use:   "org <run-id>",
	Short: "Render a run's periods as Org-mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrg,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalPeriodsCmd)
	journalCmd.AddCommand(journalOrgCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./pricingsim.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tPERIODS\tFIRST\tLAST\tCAPITAL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			r.RunID, r.Periods,
			r.FirstTime.Local().Format(time.DateTime),
			r.LastTime.Local().Format(time.DateTime),
			report.FormatMoney(r.FinalCapital))
	}
	return tw.Flush()
}

func runJournalPeriods(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListPeriods(args[0])
	if err != nil {
		return fmt.Errorf("query periods: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no periods for run %s", args[0])
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tScenario\tPremium\tPolicies\tClaims\tUW result\tCombined ratio\tCapital\tOutcome\t")
	for _, p := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t\n",
			p.Period, p.Scenario,
			report.FormatMoney(p.ChosenPremium),
			p.PolicyCount, p.ClaimCount,
			report.FormatMoney(p.UnderwritingResult),
			report.FormatPct(p.CombinedRatio),
			report.FormatMoney(p.CapitalAfter),
			p.Outcome)
	}
	return tw.Flush()
}

func runJournalOrg(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListPeriods(args[0])
	if err != nil {
		return fmt.Errorf("query periods: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatPeriodsOrg(recs))
	return nil
}
