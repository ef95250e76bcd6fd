// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds LearnRust's own configuration. WAFFLE's CoreConfig covers
// ports, TLS, logging, CORS and body limits; everything specific to this
// service lives here and is passed to each lifecycle hook.
type AppConfig struct {
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Sessions
	SessionKey    string        // signs session cookies; 32+ chars in prod
	SessionName   string        // cookie name (default: learnrust-session)
	SessionDomain string        // blank means current host
	SessionMaxAge time.Duration // cookie lifetime

	// BaseURL is the public origin, used for OAuth callbacks and links in
	// reminder emails (e.g. "https://learn.example.com").
	BaseURL string

	// AdminEmail is promoted to admin on every start once that account exists.
	AdminEmail string

	// Google sign-in; disabled when either value is blank.
	GoogleClientID     string
	GoogleClientSecret string

	// Telegram reminders and account linking; disabled when blank.
	TelegramBotToken string

	// SendGrid email reminders; disabled when the key is blank.
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	// Background work
	CurriculumRefresh time.Duration // catalog refresh interval
	RemindersEnabled  bool

	// Sign-in throttling
	LoginIPLimit    int // attempts per IP per minute
	LoginEmailLimit int // attempts per email per 5 minutes
	SignupIPLimit   int // signups per IP per hour

	// Audit trail destinations ("all", "db", "log", "off") and retention.
	AuditAuth      string
	AuditAdmin     string
	AuditRetention time.Duration // 0 keeps events forever
}
