// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	errorsfeature "github.com/dalemusser/tourismboard/internal/app/features/errors"
	healthfeature "github.com/dalemusser/tourismboard/internal/app/features/health"
	tourismfeature "github.com/dalemusser/tourismboard/internal/app/features/tourism"
	"github.com/dalemusser/tourismboard/internal/app/system/charts"
	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/metrics"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, table loading, and the Startup hook
// have completed. It boots the template engine, builds the per-request
// collaborators (session manager, number formatter, chart renderer,
// metrics) and mounts the health, metrics, static and dashboard routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessions, err := selection.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	avgMode, err := kpi.ParseAvgStayMode(appCfg.AvgStayMode)
	if err != nil {
		return nil, err
	}
	num, err := numfmt.New(appCfg.Locale)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	renderer, err := charts.NewRenderer(appCfg.ChartCacheSize, num, logger)
	if err != nil {
		logger.Error("chart renderer init failed", zap.Error(err))
		return nil, err
	}
	renderer.Metrics = m

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Tables, deps.Report, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", m.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Dashboard (CSRF protects the selection form)
	tourismHandler := tourismfeature.NewHandler(
		deps.Tables,
		kpi.Options{AvgStayMode: avgMode},
		num,
		renderer,
		deps.Report,
		sessions,
		m,
		errLog,
		logger,
	)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware(appCfg.SessionKey, secure, errLog))
		r.Mount("/", tourismfeature.Routes(tourismHandler))
	})

	logger.Info("dashboard routes mounted",
		zap.String("locale", num.Locale()),
		zap.String("avg_stay_mode", string(avgMode)),
		zap.Bool("report_configured", deps.Report != nil))

	return r, nil
}

// csrfMiddleware wraps gorilla/csrf. The token key is derived from the
// session key so one secret configures both. Over plain HTTP (dev) requests
// are marked as such so the Referer check does not demand HTTPS.
func csrfMiddleware(sessionKey string, secure bool, errLog *errorsfeature.ErrorLogger) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errLog.Log.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderError(w, r, http.StatusForbidden, "Accés denegat", "La sessió ha caducat. Torna a carregar la pàgina.", "/")
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
