// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig carries what is specific to the tourism dashboard: where the
// tables and the PDF report live, how numbers are shown, and the cookie
// session that keeps each visitor's selection.
type AppConfig struct {
	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: tourismboard-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Data sources
	TablesPath string // YAML override for the reference tables (blank = builtin)
	ReportPath string // PDF report linked from the page (e.g., ./pdf/informe.pdf)
	ReportName string // Download file name (blank = base name of ReportPath)

	// Presentation
	Locale         string // Number formatting locale (e.g., "en", "ca")
	AvgStayMode    string // weighted | segments | all_rows
	SiteName       string // Page heading
	IntroHTML      string // Optional intro text or HTML (sanitized)
	ChartCacheSize int    // Rendered chart PNGs kept in memory
}
