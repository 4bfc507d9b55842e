// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB loads the reference tables (builtin or from tables_path) and
// locates the PDF report. A missing report is not an error.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	tables := referencestore.Default()
	if appCfg.TablesPath != "" {
		loaded, err := referencestore.LoadFile(appCfg.TablesPath)
		if err != nil {
			logger.Error("reference tables load failed",
				zap.String("path", appCfg.TablesPath), zap.Error(err))
			return DBDeps{}, fmt.Errorf("load reference tables: %w", err)
		}
		tables = loaded
		logger.Info("reference tables loaded from file", zap.String("path", appCfg.TablesPath))
	} else {
		logger.Info("using builtin reference tables")
	}

	logger.Info("reference tables ready",
		zap.Int("markets", len(tables.Markets())),
		zap.Int("districts", len(tables.Districts())),
		zap.Int("year_over_year", len(tables.Deltas())))

	var rep *report.Source
	if appCfg.ReportPath != "" {
		rep = report.NewSource(appCfg.ReportPath, appCfg.ReportName, logger)
	}

	return DBDeps{Tables: tables, Report: rep}, nil
}

// EnsureSchema checks the loaded tables. Inconsistencies are logged, not
// fatal: the KPIs are computed from the segment rows regardless.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Tables == nil {
		return fmt.Errorf("reference tables not loaded")
	}
	if err := deps.Tables.CheckTotals(); err != nil {
		logger.Warn("market table totals inconsistent", zap.Error(err))
	}
	if deps.Report != nil && !deps.Report.Available() {
		logger.Warn("report not found at startup", zap.String("path", deps.Report.Path))
	}
	return nil
}
