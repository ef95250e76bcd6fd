// Package mailer sends transactional email through SendGrid.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// ErrNotConfigured is returned by Send when no API key is set.
var ErrNotConfigured = errors.New("email delivery is not configured")

// Email is one outgoing message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// SendGrid is a Sender backed by the SendGrid v3 API.
type SendGrid struct {
	key  string
	host string
	from *sgmail.Email
	log  *zap.Logger
}

// NewSendGrid creates a SendGrid sender. An empty key yields a sender whose
// Configured method is false.
func NewSendGrid(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendGrid {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGrid{
		key:  strings.TrimSpace(apiKey),
		host: defaultHost,
		from: sgmail.NewEmail(fromName, fromEmail),
		log:  logger,
	}
}

// Configured reports whether an API key is present.
func (s *SendGrid) Configured() bool { return s != nil && s.key != "" }

// Send posts e to SendGrid.
func (s *SendGrid) Send(ctx context.Context, e Email) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(e.To) == "" {
		return errors.New("email has no recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(s.key, endpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.message(e))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		s.log.Warn("sendgrid rejected message",
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body))
		return fmt.Errorf("sendgrid: status %d", res.StatusCode)
	}
	return nil
}

func (s *SendGrid) message(e Email) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = e.Subject
	p.AddTos(sgmail.NewEmail(e.ToName, e.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", e.TextBody))
	if e.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", e.HTMLBody))
	}
	return m
}
