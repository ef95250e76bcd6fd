// Package ics renders the learning schedule as an iCalendar file.
package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/google/uuid"
)

// Filename is the suggested download name.
const Filename = "rust_learning_schedule.ics"

// ContentType is the MIME type of Generate's output.
const ContentType = "text/calendar; charset=utf-8"

const (
	uidDomain   = "learnhost.online"
	startHour   = 8
	eventLength = 15 * time.Minute
	stampLayout = "20060102T150405Z"
	maxLineLen  = 75
)

// uidSpace namespaces the name-based event UIDs.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(uidDomain))

// Event is one calendar day of the schedule.
type Event struct {
	DayIndex int
	Date     time.Time // calendar date; clock and zone are ignored
	Topic    string
	Concept  string
	Phase    int
}

// Generate renders events as a VCALENDAR with CRLF line endings. now stamps
// DTSTAMP.
func Generate(events []Event, now time.Time) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(fold(s))
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//LearnRust//Learning Schedule//EN")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("X-WR-CALNAME:Rust Learning Schedule")
	line("X-WR-TIMEZONE:UTC")

	stamp := now.UTC().Format(stampLayout)
	for i, ev := range events {
		y, m, d := ev.Date.Date()
		start := time.Date(y, m, d, startHour, 0, 0, 0, time.UTC)

		line("BEGIN:VEVENT")
		line("UID:" + UID(i, ev.Date, ev.DayIndex))
		line("DTSTAMP:" + stamp)
		line("DTSTART:" + start.Format(stampLayout))
		line("DTEND:" + start.Add(eventLength).Format(stampLayout))
		line("SUMMARY:🦀 Rust: " + Escape(ev.Concept))
		line(fmt.Sprintf("DESCRIPTION:%s\\n\\nPhase %d - 10 min micro-task", Escape(ev.Topic), ev.Phase))
		line("CATEGORIES:Learning,Rust,Programming")
		line("STATUS:CONFIRMED")
		line("SEQUENCE:0")
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return b.String()
}

// UID returns a stable identifier for the event at index. The same date and
// day always give the same UID, so re-importing a calendar updates events
// instead of duplicating them.
func UID(index int, date time.Time, dayIndex int) string {
	name := date.Format(schedule.StartDateLayout) + "/" + strconv.Itoa(dayIndex)
	return fmt.Sprintf("learnrust-%d-%s@%s", index, uuid.NewSHA1(uidSpace, []byte(name)), uidDomain)
}

// Escape backslash-escapes text values. Commas, semicolons and backslashes
// are escaped and newlines become a literal \n.
func Escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		",", `\,`,
		";", `\;`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// fold splits a content line into 75-octet pieces joined by CRLF and a
// space, without cutting a UTF-8 sequence.
func fold(s string) string {
	if len(s) <= maxLineLen {
		return s
	}
	var b strings.Builder
	limit := maxLineLen
	n := 0
	for _, r := range s {
		size := len(string(r))
		if n+size > limit {
			b.WriteString("\r\n ")
			n = 0
			limit = maxLineLen - 1
		}
		b.WriteRune(r)
		n += size
	}
	return b.String()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Building events from the curriculum                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// The roster labels carry no year; the published schedule ran December 2025
// through March 2026.
var labelYears = map[time.Month]int{
	time.December: 2025,
	time.January:  2026,
	time.February: 2026,
	time.March:    2026,
}

// LabelDate parses a roster label such as "Dec 1" into a date. ok is false
// for labels outside the published months, including "Day N" placeholders.
func LabelDate(label string) (time.Time, bool) {
	t, err := time.Parse("Jan 2", strings.TrimSpace(label))
	if err != nil {
		return time.Time{}, false
	}
	year, ok := labelYears[t.Month()]
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// EventsFor builds one event per item. With a start date each day is placed
// relative to it; otherwise the roster label is used and items without a
// usable label are skipped.
func EventsFor(items []curriculum.Item, startDate *time.Time) []Event {
	out := make([]Event, 0, len(items))
	for _, it := range items {
		var date time.Time
		if startDate != nil {
			date = schedule.DateForDayIndex(*startDate, it.DayIndex)
		} else {
			d, ok := LabelDate(it.Date)
			if !ok {
				continue
			}
			date = d
		}
		out = append(out, Event{
			DayIndex: it.DayIndex,
			Date:     date,
			Topic:    it.Topic,
			Concept:  it.Concept,
			Phase:    it.Phase,
		})
	}
	return out
}
