// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/learnrust/internal/app/store/audit"
	"github.com/dalemusser/learnrust/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	ModeAll = "all" // MongoDB and zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// ValidMode reports whether s names a destination.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config picks a destination per category. Empty means ModeAll.
type Config struct {
	Auth  string
	Admin string
}

// Logger writes audit events to the audit store and to zap. A nil *Logger
// discards everything, so handlers may leave it unset.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) mode(category string) string {
	var m string
	switch category {
	case audit.CategoryAuth:
		m = l.config.Auth
	case audit.CategoryAdmin:
		m = l.config.Admin
	}
	if m == "" {
		return ModeAll
	}
	return m
}

// Log records event according to its category's mode. Store failures are
// logged and swallowed; auditing never fails a request.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	m := l.mode(event.Category)
	if m == ModeOff {
		return
	}
	if m == ModeAll || m == ModeLog {
		l.toZap(event)
	}
	if (m == ModeAll || m == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) toZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func fromRequest(r *http.Request, category, eventType string, success bool) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

func idPtr(hex string) *primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

/* -------------------------------------------------------------------------- */
/* Auth                                                                       */
/* -------------------------------------------------------------------------- */

// LoginSuccess records a sign-in. method is "password" or "google".
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, method string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginSuccess, true)
	if method == "google" {
		e.EventType = audit.EventGoogleLogin
	}
	e.UserID = idPtr(userID)
	e.Details = map[string]string{"auth_method": method}
	l.Log(ctx, e)
}

// LoginFailed records a rejected password sign-in. userID is empty when the
// email matched no account.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType, userID, email, reason string) {
	e := fromRequest(r, audit.CategoryAuth, eventType, false)
	e.UserID = idPtr(userID)
	e.FailureReason = reason
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

func (l *Logger) Signup(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventSignup, true)
	e.UserID = idPtr(userID)
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// Logout records a sign-out. userID may be empty for an expired session.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLogout, true)
	e.UserID = idPtr(userID)
	l.Log(ctx, e)
}

/* -------------------------------------------------------------------------- */
/* Admin                                                                      */
/* -------------------------------------------------------------------------- */

func (l *Logger) ReportStatusChanged(ctx context.Context, r *http.Request, actorID, reportID, status string) {
	e := fromRequest(r, audit.CategoryAdmin, audit.EventReportStatusChanged, true)
	e.ActorID = idPtr(actorID)
	e.Details = map[string]string{"report_id": reportID, "status": status}
	l.Log(ctx, e)
}

// Imported records a lessons or resources import.
func (l *Logger) Imported(ctx context.Context, r *http.Request, eventType, actorID string, inserted, skipped int) {
	e := fromRequest(r, audit.CategoryAdmin, eventType, true)
	e.ActorID = idPtr(actorID)
	e.Details = map[string]string{
		"inserted": strconv.Itoa(inserted),
		"skipped":  strconv.Itoa(skipped),
	}
	l.Log(ctx, e)
}

func (l *Logger) CurriculumRefreshed(ctx context.Context, r *http.Request, actorID string, days int, degraded bool) {
	e := fromRequest(r, audit.CategoryAdmin, audit.EventCurriculumRefreshed, true)
	e.ActorID = idPtr(actorID)
	e.Details = map[string]string{
		"days":     strconv.Itoa(days),
		"degraded": strconv.FormatBool(degraded),
	}
	l.Log(ctx, e)
}
