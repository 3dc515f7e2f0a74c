// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/postline-app/console/internal/app/resources"
	"github.com/postline-app/console/internal/app/system/flash"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backend
// client is built, but before the HTTP handler. Shared templates and the
// flash codec are the only global state the console has.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	flash.Init([]byte(appCfg.SessionKey))
	return nil
}
