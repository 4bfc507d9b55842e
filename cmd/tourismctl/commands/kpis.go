package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/spf13/cobra"
)

func kpisCmd(e *env) *cobra.Command {
	var market, district string

	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Print the global, comparison and district KPIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := kpi.ParseSelection(e.tables, market, district)
			if err != nil {
				return err
			}
			res, err := kpi.Compute(e.tables, sel, e.opts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total Viatgers\t%s\n", e.num.Count(res.Global.Travelers))
			fmt.Fprintf(w, "Total Pernoctacions\t%s\n", e.num.Count(res.Global.Overnights))
			fmt.Fprintf(w, "Estada Mitjana\t%s\n", e.num.Nights(res.Global.AvgStay))
			fmt.Fprintln(w)

			fmt.Fprintf(w, "Mercat\t%s\n", res.Comparison.Label)
			fmt.Fprintf(w, "  Viatgers\t%s\n", e.num.Count(res.Comparison.Travelers))
			fmt.Fprintf(w, "  Pernoctacions\t%s\n", e.num.Count(res.Comparison.Overnights))
			fmt.Fprintln(w)

			d := res.District
			scope := d.Scope
			if res.Selection.AllDistricts() {
				scope = "Totes les comarques"
			}
			fmt.Fprintf(w, "Comarca\t%s\n", scope)
			fmt.Fprintf(w, "  Ocupació\t%s\n", e.num.Percent(d.Occupancy))
			fmt.Fprintf(w, "  Obertura\t%s\n", e.num.Percent(d.Opening))
			fmt.Fprintf(w, "  Ocupació màxima\t%s\t%s\n", e.num.Percent(d.MaxOccupancy), d.MaxDistrict)
			fmt.Fprintf(w, "  Ocupació mínima\t%s\t%s\n", e.num.Percent(d.MinOccupancy), d.MinDistrict)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&market, "market", "", "market row (default: first row)")
	cmd.Flags().StringVar(&district, "district", kpi.Wildcard, "district name or * for all")
	return cmd
}
