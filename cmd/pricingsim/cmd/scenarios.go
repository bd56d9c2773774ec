package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rustyeddy/pricingsim/pkg/report"
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the risk scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tLABEL\tCLAIM PROB\tMEAN SEVERITY\tEXPECTED LOSS")
		for _, s := range risk.Catalog() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				s.Name, s.Label,
				report.FormatPct(s.ClaimProbability),
				report.FormatMoney(s.MeanSeverity),
				report.FormatMoney(s.ExpectedLoss()))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
