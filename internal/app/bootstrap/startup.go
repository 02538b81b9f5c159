// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/civichub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

var keepAlive *workers.KeepAlive

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// CivicHub starts the Mongo keep-alive worker here; free-tier Mongo
// deployments drop idle connections without it.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.KeepAliveInterval > 0 {
		keepAlive = workers.NewKeepAlive(deps.MongoClient, logger, appCfg.KeepAliveInterval)
		keepAlive.Start()
	}
	return nil
}
