// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/tourismboard/internal/app/resources"
	"github.com/dalemusser/tourismboard/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the tables are
// loaded but before the HTTP handler is built: shared templates and the
// site branding every page shows.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(viewdata.Site{Name: appCfg.SiteName, IntroHTML: appCfg.IntroHTML})
	return nil
}
