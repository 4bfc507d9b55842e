// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/tourismboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown when no site_name is configured.
const DefaultSiteName = "Evolució del turisme i Pisos turistics a Barcelona"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	}
type BaseVM struct {
	// Site settings (from config)
	SiteName  string
	IntroHTML template.HTML

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
}

// Site is the operator-configured branding shared by every page.
type Site struct {
	Name      string
	IntroHTML string
}

var (
	siteName  = DefaultSiteName
	introHTML template.HTML
)

// Init sets the site branding. Call this once at startup from bootstrap;
// the intro text is sanitized here so templates can render it as-is.
func Init(site Site) {
	if site.Name != "" {
		siteName = site.Name
	} else {
		siteName = DefaultSiteName
	}
	introHTML = htmlsanitize.PrepareForDisplay(site.IntroHTML)
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    siteName,
		IntroHTML:   introHTML,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}
