// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minProdSessionKey is the shortest session key accepted in prod.
const minProdSessionKey = 32

// appConfigKeys are read from config files (mongo_uri), the environment
// (LEARNRUST_MONGO_URI) and flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "learnrust", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "learnrust-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 720h)"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL for OAuth callbacks and email links"},
	{Name: "admin_email", Default: "", Desc: "Email of the account promoted to admin on startup"},

	// Google OAuth
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Telegram
	{Name: "telegram_bot_token", Default: "", Desc: "Telegram bot token (blank disables Telegram)"},

	// SendGrid
	{Name: "sendgrid_api_key", Default: "", Desc: "SendGrid API key (blank disables email reminders)"},
	{Name: "mail_from", Default: "", Desc: "From email address for reminders"},
	{Name: "mail_from_name", Default: "LearnRust", Desc: "From display name for reminders"},

	// Background work
	{Name: "curriculum_refresh", Default: "5m", Desc: "Curriculum cache refresh interval"},
	{Name: "reminders_enabled", Default: true, Desc: "Run the daily reminder dispatcher"},

	// Sign-in throttling
	{Name: "login_ip_limit", Default: 10, Desc: "Login attempts per IP per minute"},
	{Name: "login_email_limit", Default: 5, Desc: "Login attempts per email per 5 minutes"},
	{Name: "signup_ip_limit", Default: 20, Desc: "Signups per IP per hour (0 disables)"},

	// Audit trail
	{Name: "audit_auth", Default: "all", Desc: "Sign-in audit destination: all, db, log or off"},
	{Name: "audit_admin", Default: "all", Desc: "Admin action audit destination: all, db, log or off"},
	{Name: "audit_retention", Default: "2160h", Desc: "How long audit events are kept (0 keeps forever)"},
}

// LoadConfig loads WAFFLE core config and LearnRust's app config with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEARNRUST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		BaseURL:    strings.TrimRight(appValues.String("base_url"), "/"),
		AdminEmail: appValues.String("admin_email"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		TelegramBotToken: appValues.String("telegram_bot_token"),

		SendGridAPIKey: appValues.String("sendgrid_api_key"),
		MailFrom:       appValues.String("mail_from"),
		MailFromName:   appValues.String("mail_from_name"),

		CurriculumRefresh: appValues.Duration("curriculum_refresh", 5*time.Minute),
		RemindersEnabled:  appValues.Bool("reminders_enabled"),

		LoginIPLimit:    appValues.Int("login_ip_limit"),
		LoginEmailLimit: appValues.Int("login_email_limit"),
		SignupIPLimit:   appValues.Int("signup_ip_limit"),

		AuditAuth:      strings.ToLower(strings.TrimSpace(appValues.String("audit_auth"))),
		AuditAdmin:     strings.ToLower(strings.TrimSpace(appValues.String("audit_admin"))),
		AuditRetention: appValues.Duration("audit_retention", 90*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that would fail later in less
// obvious ways.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(coreCfg.Env, appCfg)
}

func validateApp(env string, appCfg AppConfig) error {
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database is required")
	}
	if env == "prod" && len(appCfg.SessionKey) < minProdSessionKey {
		return fmt.Errorf("session_key must be at least %d characters in prod", minProdSessionKey)
	}
	if appCfg.SendGridAPIKey != "" && !inputval.IsValidEmail(appCfg.MailFrom) {
		return fmt.Errorf("mail_from must be a valid address when sendgrid_api_key is set")
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}
	if !inputval.IsValidHTTPURL(appCfg.BaseURL) {
		return fmt.Errorf("base_url must be an http or https URL")
	}
	if appCfg.LoginIPLimit < 1 || appCfg.LoginEmailLimit < 1 {
		return fmt.Errorf("login_ip_limit and login_email_limit must be positive")
	}
	for key, v := range map[string]string{"audit_auth": appCfg.AuditAuth, "audit_admin": appCfg.AuditAdmin} {
		if v != "" && !auditlog.ValidMode(v) {
			return fmt.Errorf("%s must be one of all, db, log, off", key)
		}
	}
	if appCfg.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must not be negative")
	}
	return nil
}
