// Package commands implements tourismctl, a command-line view of the same
// KPIs the dashboard shows.
package commands

import (
	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every subcommand works from, built in PersistentPreRunE.
type env struct {
	tablesPath  string
	locale      string
	avgStayMode string
	verbose     bool

	tables *referencestore.Store
	opts   kpi.Options
	num    *numfmt.Formatter
	log    *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "tourismctl",
		Short:        "Tourism statistics KPIs from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
	}

	root.PersistentFlags().StringVar(&e.tablesPath, "tables", "", "YAML file overriding the builtin tables")
	root.PersistentFlags().StringVar(&e.locale, "locale", "en", "locale for number formatting")
	root.PersistentFlags().StringVar(&e.avgStayMode, "avg-stay-mode", string(kpi.AvgStayWeighted), "average stay KPI: weighted, segments or all_rows")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(kpisCmd(e), marketsCmd(e), districtsCmd(e), chartCmd(e))
	return root
}

// Execute runs tourismctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (e *env) load() error {
	e.log = zap.NewNop()
	if e.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		e.log = l
	}

	mode, err := kpi.ParseAvgStayMode(e.avgStayMode)
	if err != nil {
		return err
	}
	e.opts = kpi.Options{AvgStayMode: mode}

	if e.num, err = numfmt.New(e.locale); err != nil {
		return err
	}

	e.tables = referencestore.Default()
	if e.tablesPath != "" {
		if e.tables, err = referencestore.LoadFile(e.tablesPath); err != nil {
			return err
		}
		e.log.Debug("tables loaded", zap.String("path", e.tablesPath))
	}
	if err := e.tables.CheckTotals(); err != nil {
		e.log.Warn("market table totals inconsistent", zap.Error(err))
	}
	return nil
}
