// internal/app/bootstrap/background.go
package bootstrap

import (
	"errors"
	"time"

	"github.com/dalemusser/learnrust/internal/app/store/audit"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	notificationstore "github.com/dalemusser/learnrust/internal/app/store/notifications"
	"github.com/dalemusser/learnrust/internal/app/store/oauthstate"
	telegramstore "github.com/dalemusser/learnrust/internal/app/store/telegram"
	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/mailer"
	"github.com/dalemusser/learnrust/internal/app/system/ratelimit"
	"github.com/dalemusser/learnrust/internal/app/system/reminders"
	"github.com/dalemusser/learnrust/internal/app/system/tasks"
	"github.com/dalemusser/learnrust/internal/app/system/telegram"
	"github.com/dalemusser/learnrust/internal/app/system/workers"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Background holds the long-lived services built at Startup, started by
// BuildHandler and stopped by Shutdown.
type Background struct {
	Catalog   *catalog.Catalog
	Bot       *telegram.Bot // nil when no token is configured
	Mailer    *mailer.SendGrid
	Scheduler *tasks.Scheduler
	Poll      *workers.TelegramPoll // nil without a bot
	Audit     *auditlog.Logger

	LoginLimiter  *ratelimit.LoginLimiter
	SignupLimiter *ratelimit.Limiter // nil when signups are unthrottled
}

// ChannelConfigured reports whether reminders on channel can be delivered.
func (b *Background) ChannelConfigured(channel string) bool {
	switch channel {
	case models.ChannelTelegram:
		return b.Bot.Configured()
	case models.ChannelEmail:
		return b.Mailer.Configured()
	}
	return false
}

// build creates every background service. Nothing is started.
func (b *Background) build(appCfg AppConfig, db *mongo.Database, logger *zap.Logger) error {
	b.Catalog = catalog.New(lessonstore.New(db), &curriculum.DefaultRoster, appCfg.CurriculumRefresh, logger)

	bot, err := telegram.New(appCfg.TelegramBotToken, logger)
	switch {
	case errors.Is(err, telegram.ErrNotConfigured):
		logger.Info("telegram not configured; telegram reminders and linking disabled")
	case err != nil:
		// A bad token should not keep the site down.
		logger.Error("telegram bot unavailable", zap.Error(err))
	default:
		b.Bot = bot
	}

	b.Mailer = mailer.NewSendGrid(appCfg.SendGridAPIKey, appCfg.MailFrom, appCfg.MailFromName, logger)
	if !b.Mailer.Configured() {
		logger.Info("sendgrid not configured; email reminders disabled")
	}

	auditStore := audit.New(db)
	b.Audit = auditlog.New(auditStore, logger, auditlog.Config{Auth: appCfg.AuditAuth, Admin: appCfg.AuditAdmin})

	b.LoginLimiter = ratelimit.NewLoginLimiterWithConfig(appCfg.LoginIPLimit, time.Minute, appCfg.LoginEmailLimit, 5*time.Minute)
	if appCfg.SignupIPLimit > 0 {
		b.SignupLimiter = ratelimit.New(appCfg.SignupIPLimit, time.Hour)
	}

	b.Scheduler = tasks.NewScheduler(logger, time.Minute)
	jobs := []tasks.Job{
		tasks.CatalogRefreshJob(b.Catalog, logger, appCfg.CurriculumRefresh),
		tasks.OAuthStateCleanupJob(oauthstate.New(db), logger),
	}
	if appCfg.AuditRetention > 0 {
		jobs = append(jobs, tasks.AuditRetentionJob(auditStore, appCfg.AuditRetention, logger))
	}
	if appCfg.RemindersEnabled {
		deps := reminders.Deps{
			Prefs:      notificationstore.New(db),
			Settings:   usersettingsstore.New(db),
			Users:      userstore.New(db),
			Links:      telegramstore.New(db),
			Curriculum: b.Catalog,
			BaseURL:    appCfg.BaseURL,
		}
		if b.Bot != nil {
			deps.Telegram = b.Bot
		}
		if b.Mailer.Configured() {
			deps.Email = b.Mailer
		}
		jobs = append(jobs, tasks.DailyRemindersJob(reminders.New(deps, logger), logger))
	}
	for _, j := range jobs {
		if err := b.Scheduler.Add(j); err != nil {
			return err
		}
	}

	if b.Bot != nil {
		b.Poll = workers.NewTelegramPoll(b.Bot, telegramstore.New(db), logger)
	}
	return nil
}

func (b *Background) start() {
	b.Scheduler.Start()
	if b.Poll != nil {
		b.Poll.Start()
	}
}

func (b *Background) stop() {
	if b.Poll != nil {
		b.Poll.Stop()
	}
	if b.Scheduler != nil {
		b.Scheduler.Stop()
	}
	if b.LoginLimiter != nil {
		b.LoginLimiter.Close()
	}
	if b.SignupLimiter != nil {
		b.SignupLimiter.Close()
	}
}
