// internal/app/features/admindash/templates.go
package admindash

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "admindash",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
