// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ReminderEmailData holds data for the daily reminder templates.
type ReminderEmailData struct {
	Name       string
	Day        int
	Topic      string
	Concept    string
	Phase      int
	PhaseName  string
	HasContent bool
	LessonURL  string
}

// BuildReminderEmail creates a reminder email with both HTML and text bodies.
func BuildReminderEmail(data ReminderEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Day %d: %s", data.Day, data.Concept),
		TextBody: buildReminderText(data),
		HTMLBody: buildReminderHTML(data),
	}
}

func buildReminderText(data ReminderEmailData) string {
	var buf bytes.Buffer
	if data.Name != "" {
		buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.Name))
	}
	buf.WriteString(fmt.Sprintf("Today is day %d of your Rust journey.\n\n", data.Day))
	buf.WriteString(fmt.Sprintf("Topic: %s\n", data.Topic))
	buf.WriteString(fmt.Sprintf("Concept: %s\n", data.Concept))
	buf.WriteString(fmt.Sprintf("Phase %d: %s\n\n", data.Phase, data.PhaseName))
	if data.HasContent {
		buf.WriteString("Your 10 minute lesson is ready:\n")
	} else {
		buf.WriteString("The full lesson is still being written. Today's topic is on your schedule:\n")
	}
	buf.WriteString(data.LessonURL + "\n")
	return buf.String()
}

var reminderTmpl = template.Must(template.New("reminder").Parse(reminderHTMLTemplate))

func buildReminderHTML(data ReminderEmailData) string {
	var buf bytes.Buffer
	_ = reminderTmpl.Execute(&buf, data)
	return buf.String()
}

const reminderHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Day {{.Day}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; font-weight: 600; color: #b7410e;">🦀 Day {{.Day}}: {{.Concept}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              {{if .Name}}<p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hi {{.Name}},</p>{{end}}
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">{{.Topic}}</p>
              <p style="margin: 0 0 24px; font-size: 14px; color: #6b7280;">Phase {{.Phase}}: {{.PhaseName}}</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.LessonURL}}" style="display: inline-block; padding: 14px 32px; background-color: #b7410e; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      {{if .HasContent}}Start today's lesson{{else}}View today's topic{{end}}
                    </a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
