// Package reminders sends each learner's daily lesson reminder at their
// chosen local time.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/mailer"
	"github.com/dalemusser/learnrust/internal/app/system/timezones"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Preferences lists due reminders and records deliveries.
type Preferences interface {
	ListEnabled(ctx context.Context, channel string) ([]models.NotificationPreference, error)
	MarkSent(ctx context.Context, id primitive.ObjectID, localDate string) (bool, error)
}

// Settings returns a learner's schedule.
type Settings interface {
	Get(ctx context.Context, userID primitive.ObjectID) (models.UserSettings, bool, error)
}

// Users looks up the recipient.
type Users interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Links returns a learner's Telegram link.
type Links interface {
	Get(ctx context.Context, userID primitive.ObjectID) (models.TelegramLink, bool, error)
}

// Curriculum supplies the current lesson plan.
type Curriculum interface {
	Current(ctx context.Context) *catalog.Snapshot
}

// TelegramSender delivers a chat message.
type TelegramSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Deps wires the dispatcher. Telegram and Email may be nil, in which case
// reminders on that channel are skipped.
type Deps struct {
	Prefs      Preferences
	Settings   Settings
	Users      Users
	Links      Links
	Curriculum Curriculum
	Telegram   TelegramSender
	Email      mailer.Sender
	BaseURL    string
}

// Dispatcher sends due reminders.
type Dispatcher struct {
	d   Deps
	log *zap.Logger
}

// New creates a dispatcher.
func New(d Deps, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.BaseURL = strings.TrimRight(d.BaseURL, "/")
	return &Dispatcher{d: d, log: logger}
}

// catchUp is how long after its delivery time a reminder is still sent, so a
// late or skipped scheduler tick does not drop the day's reminder.
const catchUp = time.Hour

// due reports whether local falls in [deliveryTime, deliveryTime+catchUp) on
// local's date. deliveryTime is HH:MM.
func due(local time.Time, deliveryTime string) bool {
	hm, err := time.Parse("15:04", deliveryTime)
	if err != nil {
		return false
	}
	at := time.Date(local.Year(), local.Month(), local.Day(), hm.Hour(), hm.Minute(), 0, 0, local.Location())
	return !local.Before(at) && local.Sub(at) < catchUp
}

// Result counts what one RunOnce did.
type Result struct {
	Sent    int
	Skipped int
	Failed  int
}

// RunOnce sends every reminder that is due at now's local time and has not
// been sent on that local date yet. A reminder is claimed with MarkSent
// before delivery so concurrent runs never double-send.
func (p *Dispatcher) RunOnce(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	snap := p.d.Curriculum.Current(ctx)

	for _, channel := range models.Channels {
		prefs, err := p.d.Prefs.ListEnabled(ctx, channel)
		if err != nil {
			return res, fmt.Errorf("list %s reminders: %w", channel, err)
		}
		for _, pref := range prefs {
			local := now.In(timezones.LocationOrUTC(pref.Timezone))
			if !due(local, pref.DeliveryTime) {
				continue
			}
			localDate := local.Format(schedule.StartDateLayout)
			if pref.LastSentOn == localDate {
				continue
			}
			switch p.deliver(ctx, snap, pref, local) {
			case outcomeSent:
				res.Sent++
			case outcomeSkipped:
				res.Skipped++
			case outcomeFailed:
				res.Failed++
			}
		}
	}

	if res.Sent+res.Failed > 0 {
		p.log.Info("reminders dispatched",
			zap.Int("sent", res.Sent),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed))
	}
	return res, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

func (p *Dispatcher) deliver(ctx context.Context, snap *catalog.Snapshot, pref models.NotificationPreference, local time.Time) outcome {
	log := p.log.With(
		zap.String("user_id", pref.UserID.Hex()),
		zap.String("channel", pref.Channel))

	if pref.Channel == models.ChannelWhatsApp {
		log.Debug("whatsapp reminders have no provider; skipping")
		return outcomeSkipped
	}
	if (pref.Channel == models.ChannelTelegram && p.d.Telegram == nil) ||
		(pref.Channel == models.ChannelEmail && p.d.Email == nil) {
		log.Debug("channel not configured; skipping")
		return outcomeSkipped
	}

	settings, found, err := p.d.Settings.Get(ctx, pref.UserID)
	if err != nil {
		log.Warn("load settings failed", zap.Error(err))
		return outcomeFailed
	}
	if !found || settings.StartDate == "" {
		return outcomeSkipped
	}
	start, err := schedule.ParseStartDate(settings.StartDate)
	if err != nil {
		log.Warn("stored start date is invalid", zap.String("start_date", settings.StartDate))
		return outcomeSkipped
	}
	day := schedule.CapDay(schedule.ComputeCurrentDay(start, local))

	var item curriculum.Item
	if snap != nil {
		item, _ = snap.Curriculum.ByDayIndex(day)
	}
	msg := Message{Day: day, Item: item, LessonURL: fmt.Sprintf("%s/lesson/%d", p.d.BaseURL, day)}

	claimed, err := p.d.Prefs.MarkSent(ctx, pref.ID, local.Format(schedule.StartDateLayout))
	if err != nil {
		log.Warn("claim reminder failed", zap.Error(err))
		return outcomeFailed
	}
	if !claimed {
		return outcomeSkipped
	}

	switch pref.Channel {
	case models.ChannelTelegram:
		err = p.sendTelegram(ctx, pref.UserID, msg)
	case models.ChannelEmail:
		err = p.sendEmail(ctx, pref.UserID, msg)
	}
	if err != nil {
		log.Warn("reminder delivery failed", zap.Int("day", day), zap.Error(err))
		return outcomeFailed
	}
	return outcomeSent
}

func (p *Dispatcher) sendTelegram(ctx context.Context, userID primitive.ObjectID, msg Message) error {
	link, found, err := p.d.Links.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !found || link.Status != models.TelegramConnected || link.TelegramChatID == nil {
		return fmt.Errorf("telegram is not connected")
	}
	return p.d.Telegram.Send(ctx, *link.TelegramChatID, msg.Text())
}

func (p *Dispatcher) sendEmail(ctx context.Context, userID primitive.ObjectID, msg Message) error {
	u, err := p.d.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	phase, _ := curriculum.PhaseInfo(msg.Item.Phase)
	e := mailer.BuildReminderEmail(mailer.ReminderEmailData{
		Name:       u.FullName,
		Day:        msg.Day,
		Topic:      msg.Item.Topic,
		Concept:    msg.Item.Concept,
		Phase:      msg.Item.Phase,
		PhaseName:  phase.Name,
		HasContent: msg.Item.HasContent,
		LessonURL:  msg.LessonURL,
	})
	e.To = u.Email
	e.ToName = u.FullName
	return p.d.Email.Send(ctx, e)
}

// Message is the content of one reminder.
type Message struct {
	Day       int
	Item      curriculum.Item
	LessonURL string
}

// Text renders the plain-text reminder used for chat channels.
func (m Message) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🦀 Day %d of %d: %s\n", m.Day, schedule.TotalDays, m.Item.Concept)
	fmt.Fprintf(&b, "%s\n", m.Item.Topic)
	if phase, ok := curriculum.PhaseInfo(m.Item.Phase); ok {
		fmt.Fprintf(&b, "Phase %d: %s\n", phase.Number, phase.Name)
	}
	if m.Item.HasContent {
		b.WriteString("\nToday's 10 minute lesson is ready.\n")
	} else {
		b.WriteString("\nThe full lesson is coming soon.\n")
	}
	b.WriteString(m.LessonURL)
	return b.String()
}
