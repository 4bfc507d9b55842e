// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"github.com/dalemusser/tourismboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: report_path, locale, etc.
//   - Environment variables: TOURISMBOARD_REPORT_PATH, TOURISMBOARD_LOCALE, etc.
//   - Command-line flags: --report_path, --locale, etc.
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: selection.DefaultSessionName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Data sources
	{Name: "tables_path", Default: "", Desc: "YAML file overriding the builtin reference tables"},
	{Name: "report_path", Default: "./pdf/informe.pdf", Desc: "PDF report linked from the dashboard"},
	{Name: "report_name", Default: "informe.pdf", Desc: "File name offered when downloading the report"},

	// Presentation
	{Name: "locale", Default: "en", Desc: "Locale for number formatting (BCP 47, e.g. en, ca, es)"},
	{Name: "avg_stay_mode", Default: string(kpi.AvgStayWeighted), Desc: "Average stay KPI: 'weighted' (default, travelers-weighted segments), 'segments', or 'all_rows' (plain mean of every market row incl. Total, as the first published dashboard computed it)"},
	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Dashboard title"},
	{Name: "intro_html", Default: "", Desc: "Intro text or HTML shown under the title (sanitized)"},
	{Name: "chart_cache_size", Default: charts.DefaultCacheSize, Desc: "Number of rendered chart images kept in memory"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TOURISMBOARD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TOURISMBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		// Data sources
		TablesPath: appValues.String("tables_path"),
		ReportPath: appValues.String("report_path"),
		ReportName: appValues.String("report_name"),

		// Presentation
		Locale:         appValues.String("locale"),
		AvgStayMode:    appValues.String("avg_stay_mode"),
		SiteName:       appValues.String("site_name"),
		IntroHTML:      appValues.String("intro_html"),
		ChartCacheSize: appValues.Int("chart_cache_size"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in prod")
	}

	if _, err := kpi.ParseAvgStayMode(appCfg.AvgStayMode); err != nil {
		logger.Error("invalid avg_stay_mode", zap.String("avg_stay_mode", appCfg.AvgStayMode), zap.Error(err))
		return fmt.Errorf("invalid avg_stay_mode: %w", err)
	}

	if _, err := numfmt.New(appCfg.Locale); err != nil {
		logger.Error("invalid locale", zap.String("locale", appCfg.Locale), zap.Error(err))
		return fmt.Errorf("invalid locale: %w", err)
	}

	if appCfg.ChartCacheSize <= 0 {
		return fmt.Errorf("chart_cache_size must be positive, got %d", appCfg.ChartCacheSize)
	}

	if appCfg.ReportPath == "" {
		logger.Warn("report_path is empty; the dashboard will render without the report link")
	}

	return nil
}
