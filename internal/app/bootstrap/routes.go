// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/learnrust/internal/app/features/auditlog"
	authgooglefeature "github.com/dalemusser/learnrust/internal/app/features/authgoogle"
	calendarfeature "github.com/dalemusser/learnrust/internal/app/features/calendar"
	contentadminfeature "github.com/dalemusser/learnrust/internal/app/features/contentadmin"
	curriculumfeature "github.com/dalemusser/learnrust/internal/app/features/curriculum"
	errorsfeature "github.com/dalemusser/learnrust/internal/app/features/errors"
	healthfeature "github.com/dalemusser/learnrust/internal/app/features/health"
	lessonsfeature "github.com/dalemusser/learnrust/internal/app/features/lessons"
	loginfeature "github.com/dalemusser/learnrust/internal/app/features/login"
	notesfeature "github.com/dalemusser/learnrust/internal/app/features/notes"
	notificationsfeature "github.com/dalemusser/learnrust/internal/app/features/notifications"
	progressfeature "github.com/dalemusser/learnrust/internal/app/features/progress"
	reportsfeature "github.com/dalemusser/learnrust/internal/app/features/reports"
	settingsfeature "github.com/dalemusser/learnrust/internal/app/features/settings"
	telegramfeature "github.com/dalemusser/learnrust/internal/app/features/telegram"
	userinfofeature "github.com/dalemusser/learnrust/internal/app/features/userinfo"
	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler builds the router and starts the background services.
//
//	/health                 public
//	/login /signup /logout  public
//	/auth/google/*          public
//	/api/*                  signed in
//	/api/admin/*            admin
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.LearnRustMongoDatabase
	bg := deps.Background

	// Re-read the user on each request so disabled accounts and role
	// changes apply immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.NotFound(errorsfeature.NotFoundHandler)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowedHandler)
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.LearnRustMongoClient, bg.Catalog, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, bg.LoginLimiter, logger)
	loginHandler.Audit = bg.Audit
	r.Mount("/", loginfeature.Routes(loginHandler, bg.SignupLimiter))

	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	googleHandler.Audit = bg.Audit
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Learner API
	r.Route("/api", func(api chi.Router) {
		api.Use(sessionMgr.RequireSignedIn)

		userinfofeature.MountRoutes(api, userinfofeature.NewHandler(db, errLog, logger))

		settingsHandler := settingsfeature.NewHandler(db, errLog, logger)
		api.Route("/settings", settingsHandler.MountRoutes)

		curriculumHandler := curriculumfeature.NewHandler(db, bg.Catalog, errLog, logger)
		api.Mount("/curriculum", curriculumfeature.Routes(curriculumHandler))

		lessonsHandler := lessonsfeature.NewHandler(db, bg.Catalog, errLog, logger)
		api.Mount("/lessons", lessonsfeature.Routes(lessonsHandler))

		progressHandler := progressfeature.NewHandler(db, bg.Catalog, errLog, logger)
		api.Mount("/progress", progressfeature.Routes(progressHandler))

		notesHandler := notesfeature.NewHandler(db, errLog, logger)
		api.Mount("/notes", notesfeature.Routes(notesHandler))

		reportsHandler := reportsfeature.NewHandler(db, errLog, logger)
		reportsHandler.Audit = bg.Audit
		api.Mount("/reports", reportsfeature.Routes(reportsHandler))

		notificationsHandler := notificationsfeature.NewHandler(db, bg.ChannelConfigured, errLog, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

		telegramHandler := telegramfeature.NewHandler(db, bg.Bot, errLog, logger)
		api.Mount("/telegram", telegramfeature.Routes(telegramHandler))

		calendarfeature.NewHandler(db, bg.Catalog, errLog, logger).MountRoutes(api)

		// Admin
		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/reports", reportsfeature.AdminRoutes(reportsHandler, sessionMgr))
			admin.Mount("/audit", auditlogfeature.Routes(auditlogfeature.NewHandler(db, errLog, logger), sessionMgr))
			contentHandler := contentadminfeature.NewHandler(db, bg.Catalog, errLog, logger)
			contentHandler.Audit = bg.Audit
			contentadminfeature.MountAdminRoutes(admin, contentHandler, sessionMgr)
		})
	})

	bg.start()
	return r, nil
}
