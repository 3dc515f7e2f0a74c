package admindash_test

import (
	"os"
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/resources"
	"go.uber.org/zap"
)

// TestMain boots the template engine from the embedded sets, mirroring
// bootstrap.BuildHandler, so successful renders write a real response
// instead of the nil-engine 500.
func TestMain(m *testing.M) {
	resources.LoadSharedTemplates()
	eng := templates.New(false)
	if err := eng.Boot(zap.NewNop()); err != nil {
		panic(err)
	}
	templates.UseEngine(eng, zap.NewNop())
	os.Exit(m.Run())
}
