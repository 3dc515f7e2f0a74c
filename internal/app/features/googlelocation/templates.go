// internal/app/features/googlelocation/templates.go
package googlelocation

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "googlelocation",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
