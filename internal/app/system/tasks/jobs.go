// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/learnrust/internal/app/store/audit"
	"github.com/dalemusser/learnrust/internal/app/store/oauthstate"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/reminders"
	"go.uber.org/zap"
)

// CatalogRefreshJob rebuilds the curriculum snapshot so newly imported
// lessons appear without waiting for a request to notice the stale cache.
func CatalogRefreshJob(cat *catalog.Catalog, logger *zap.Logger, every time.Duration) Job {
	if every <= 0 {
		every = 5 * time.Minute
	}
	return Job{
		Name:     "catalog-refresh",
		Interval: every,
		Run: func(ctx context.Context) error {
			snap := cat.Refresh(ctx)
			if snap.Degraded() {
				return snap.FetchErr
			}
			return nil
		},
	}
}

// DailyRemindersJob checks every minute for reminders due at the current
// local time of each learner.
func DailyRemindersJob(d *reminders.Dispatcher, logger *zap.Logger) Job {
	return Job{
		Name:     "daily-reminders",
		Interval: time.Minute,
		Run: func(ctx context.Context) error {
			_, err := d.RunOnce(ctx, time.Now().Truncate(time.Minute))
			return err
		},
	}
}

// OAuthStateCleanupJob creates a job that removes expired OAuth state tokens.
// This is a backup for when MongoDB's TTL index cleanup is delayed.
func OAuthStateCleanupJob(stateStore *oauthstate.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "oauth-state-cleanup",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			count, err := stateStore.CleanupExpired(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Debug("cleaned up expired OAuth states", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// AuditRetentionJob deletes audit events older than keep, once a day.
func AuditRetentionJob(auditStore *audit.Store, keep time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "audit-retention",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			count, err := auditStore.DeleteBefore(ctx, time.Now().UTC().Add(-keep))
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("pruned audit events", zap.Int64("count", count))
			}
			return nil
		},
	}
}
