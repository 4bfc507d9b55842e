// internal/app/features/tourism/templates.go
package tourism

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "tourism",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
