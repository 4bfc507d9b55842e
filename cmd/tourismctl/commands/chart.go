package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func chartCmd(e *env) *cobra.Command {
	var market, out string

	cmd := &cobra.Command{
		Use:       "chart <" + strings.Join(charts.Names, "|") + ">",
		Short:     "Write a dashboard chart as PNG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: charts.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			sel, err := kpi.ParseSelection(e.tables, market, "")
			if err != nil {
				return err
			}
			res, err := kpi.Compute(e.tables, sel, e.opts)
			if err != nil {
				return err
			}

			r, err := charts.NewRenderer(1, e.num, e.log)
			if err != nil {
				return err
			}
			png, err := r.Render(name, res)
			if err != nil {
				return err
			}

			if out == "" {
				out = name + ".png"
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			e.log.Info("chart written", zap.String("chart", name), zap.String("path", out))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, len(png))
			return nil
		},
	}

	cmd.Flags().StringVar(&market, "market", "", "market for the comparison chart (default: first row)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <chart>.png)")
	return cmd
}
