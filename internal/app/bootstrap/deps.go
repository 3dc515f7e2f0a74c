// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/postline-app/console/internal/app/api"
	"github.com/postline-app/console/internal/app/system/auth"
	"go.uber.org/zap"
)

// Deps holds the console's backend dependencies. There is no database:
// the REST backend owns all state, and the client here is the only data
// plane.
type Deps struct {
	Backend *api.Client
}

// ConnectDB builds the backend API client. The name comes from WAFFLE's
// lifecycle; for this app "the database" is the REST backend.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	backend := api.New(appCfg.APIBaseURL, auth.Credentials{}, logger)
	logger.Info("backend client configured", zap.String("base_url", backend.BaseURL()))
	return Deps{Backend: backend}, nil
}

// EnsureSchema is a no-op: the backend owns all persistent state.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
