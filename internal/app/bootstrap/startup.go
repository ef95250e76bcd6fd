// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after the schema is in place and before the handler is
// built. It applies timeout overrides, promotes the configured admin, builds
// the background services and warms the curriculum cache.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		c := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("count", n),
			zap.Duration("short", c.Short),
			zap.Duration("medium", c.Medium),
			zap.Duration("long", c.Long),
			zap.Duration("batch", c.Batch))
	}

	db := deps.LearnRustMongoDatabase
	if err := ensureAdmin(ctx, userstore.New(db), appCfg.AdminEmail, logger); err != nil {
		return err
	}

	if err := deps.Background.build(appCfg, db, logger); err != nil {
		return err
	}

	warmCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()
	snap := deps.Background.Catalog.Refresh(warmCtx)
	logger.Info("curriculum loaded",
		zap.Int("content_count", snap.Curriculum.ContentCount()),
		zap.Bool("degraded", snap.Degraded()))
	return nil
}

type adminPromoter interface {
	EnsureAdmin(ctx context.Context, email string) (bool, error)
}

func ensureAdmin(ctx context.Context, users adminPromoter, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	found, err := users.EnsureAdmin(ctx, email)
	if err != nil {
		logger.Error("promote admin", zap.String("email", email), zap.Error(err))
		return err
	}
	if !found {
		logger.Warn("admin_email has no account yet; it will be promoted after sign-up and restart",
			zap.String("email", email))
		return nil
	}
	logger.Info("admin ensured", zap.String("email", email))
	return nil
}
