package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/curriculum"
)

func unfold(s string) string { return strings.ReplaceAll(s, "\r\n ", "") }

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 11, 30, 12, 34, 56, 0, time.UTC)
	events := []Event{{
		DayIndex: 1,
		Date:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Topic:    "Setup: rustup, cargo; done",
		Concept:  "Environment",
		Phase:    1,
	}}

	out := Generate(events, now)

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//LearnRust//Learning Schedule//EN\r\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("missing calendar footer")
	}
	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Error("found a bare LF line ending")
	}

	body := unfold(out)
	for _, want := range []string{
		"X-WR-CALNAME:Rust Learning Schedule\r\n",
		"X-WR-TIMEZONE:UTC\r\n",
		"DTSTAMP:20251130T123456Z\r\n",
		"DTSTART:20251201T080000Z\r\n",
		"DTEND:20251201T081500Z\r\n",
		"SUMMARY:🦀 Rust: Environment\r\n",
		`DESCRIPTION:Setup: rustup\, cargo\; done\n\nPhase 1 - 10 min micro-task` + "\r\n",
		"CATEGORIES:Learning,Rust,Programming\r\n",
		"STATUS:CONFIRMED\r\n",
		"SEQUENCE:0\r\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("expected 1 event, got %d", n)
	}
}

func TestGenerate_FoldsLongLines(t *testing.T) {
	events := []Event{{
		DayIndex: 9,
		Date:     time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		Topic:    strings.Repeat("Ownership 🦀 ", 20),
		Concept:  "Ownership",
		Phase:    1,
	}}
	out := Generate(events, time.Now())
	for _, l := range strings.Split(out, "\r\n") {
		if len(l) > maxLineLen {
			t.Errorf("line longer than %d octets: %d", maxLineLen, len(l))
		}
	}
	if !strings.Contains(unfold(out), strings.Repeat("Ownership 🦀 ", 20)) {
		t.Error("unfolded description should match the topic")
	}
}

func TestUID_Stable(t *testing.T) {
	d := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	a := UID(3, d, 36)
	if a != UID(3, d, 36) {
		t.Error("UID should be deterministic")
	}
	if a == UID(3, d, 37) || a == UID(3, d.AddDate(0, 0, 1), 36) {
		t.Error("UID should differ for different days")
	}
	if !strings.HasPrefix(a, "learnrust-3-") || !strings.HasSuffix(a, "@learnhost.online") {
		t.Errorf("unexpected UID format %q", a)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a,b;c", `a\,b\;c`},
		{"line1\nline2", `line1\nline2`},
		{"crlf\r\nnext", `crlf\nnext`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabelDate(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"Dec 1", "2025-12-01", true},
		{"Jan 15", "2026-01-15", true},
		{"Mar 31", "2026-03-31", true},
		{"Apr 1", "", false},
		{"Day 122", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := LabelDate(tt.label)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestEventsFor(t *testing.T) {
	c := curriculum.Build(&curriculum.DefaultRoster, nil)
	items := c.Items()

	byLabel := EventsFor(items, nil)
	if len(byLabel) != curriculum.TotalDays {
		t.Fatalf("expected %d events from labels, got %d", curriculum.TotalDays, len(byLabel))
	}
	if got := byLabel[0].Date.Format("2006-01-02"); got != "2025-12-01" {
		t.Errorf("day 1 label date = %s", got)
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	byStart := EventsFor(items, &start)
	if got := byStart[14].Date.Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("day 15 from start = %s, want 2025-01-15", got)
	}

	placeholders := curriculum.Build(nil, nil)
	if got := EventsFor(placeholders.Items(), nil); len(got) != 0 {
		t.Errorf("placeholder labels should be skipped, got %d events", len(got))
	}
}
