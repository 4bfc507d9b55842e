// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	referencestore "github.com/dalemusser/tourismboard/internal/app/store/reference"
	"github.com/dalemusser/tourismboard/internal/app/system/report"
)

// DBDeps holds the back-end dependencies for the app. The dashboard has no
// database: its data is the immutable reference tables plus the optional
// PDF report on disk.
type DBDeps struct {
	Tables *referencestore.Store
	Report *report.Source
}
