package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func marketsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List the market rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MARKET\tLABEL\tTRAVELERS\tOVERNIGHTS\tAVG STAY")
			for _, m := range e.tables.Markets() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.Market, m.Label, e.num.Count(m.Travelers), e.num.Count(m.Overnights), e.num.Decimal(m.AvgStay, 1))
			}
			return w.Flush()
		},
	}
}

func districtsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "List the districts in table order",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DISTRICT\tOCCUPANCY\tOPENING")
			for _, d := range e.tables.Districts() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, e.num.Percent(d.Occupancy), e.num.Percent(d.Opening))
			}
			return w.Flush()
		},
	}
}
