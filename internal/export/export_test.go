package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/concordapp/concord/internal/negotiation"
)

func TestEventWithDate(t *testing.T) {
	data := Event("Talk it through", "Issue: plans changing", "2025-03-01", "19:00")
	text := string(data)

	if !strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n") {
		t.Error("artifact should open a VCALENDAR")
	}
	if !strings.Contains(text, "DTSTART:20250301T190000\r\n") {
		t.Errorf("missing DTSTART:\n%s", text)
	}
	if !strings.Contains(text, "DTEND:20250301T194500\r\n") {
		t.Errorf("DTEND should be 45 minutes after start:\n%s", text)
	}
	if !strings.Contains(text, "SUMMARY:Talk it through\r\n") {
		t.Errorf("missing SUMMARY:\n%s", text)
	}
}

func TestEventWithoutDate(t *testing.T) {
	text := string(Event("Pause agreement", "Return at 8pm; no raised voices", "", ""))

	if !strings.Contains(text, "DTSTART:\r\n") || !strings.Contains(text, "DTEND:\r\n") {
		t.Errorf("dateless export should carry empty start/end:\n%s", text)
	}
	if !strings.Contains(text, `DESCRIPTION:Return at 8pm\; no raised voices`) {
		t.Errorf("description should be escaped:\n%s", text)
	}
}

func TestEventEscapesText(t *testing.T) {
	text := string(Event("a,b;c", "line1\nline2", "2025-03-01", "09:00"))
	if !strings.Contains(text, `SUMMARY:a\,b\;c`) {
		t.Errorf("summary not escaped:\n%s", text)
	}
	if !strings.Contains(text, `DESCRIPTION:line1\nline2`) {
		t.Errorf("newline not escaped:\n%s", text)
	}
}

func TestEventUIDStable(t *testing.T) {
	a := Event("t", "d", "2025-03-01", "09:00")
	b := Event("t", "other description", "2025-03-01", "09:00")
	uid := func(data []byte) string {
		for _, line := range strings.Split(string(data), "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	if uid(a) == "" || uid(a) != uid(b) {
		t.Errorf("UID should be stable for the same title/date/time: %q vs %q", uid(a), uid(b))
	}
}

func resolvedSession() negotiation.Session {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	resolved := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	review := resolved.Add(negotiation.ReviewDelay)

	s := negotiation.NewSession("alice", "ben", created)
	s.Step = negotiation.StepResolved
	s.Qualify.Statement = "I feel hurt when plans change"
	s.Qualify.Details = "Friday was cancelled\nlast minute"
	s.Schedule = negotiation.ScheduleData{Date: "2025-03-01", Time: "19:00", Descriptor: "after dinner", Confirmed: true}
	s.Outcome.Decisions = "Weekly Friday check-in"
	s.Recap = "Issue: I feel hurt when plans change\nDetails: Friday was cancelled last minute"
	s.ResolvedAt = &resolved
	s.ReviewAt = &review
	s.RescheduleCount = 1
	return s
}

func TestResolvedCSV(t *testing.T) {
	open := negotiation.NewSession("alice", "ben", time.Now())
	sessions := []negotiation.Session{open, resolvedSession()}

	data, err := ResolvedCSV(sessions)
	if err != nil {
		t.Fatalf("ResolvedCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 resolved row", len(records))
	}
	if len(records[0]) != len(csvHeader) {
		t.Errorf("header has %d columns, want %d", len(records[0]), len(csvHeader))
	}

	row := records[1]
	if row[0] == "" {
		t.Error("id column empty")
	}
	if row[3] != "2025-02-01T08:00:00Z" {
		t.Errorf("created_at = %q, want ISO-8601", row[3])
	}
	if strings.Contains(row[6], "\n") {
		t.Errorf("issue_details contains a newline: %q", row[6])
	}
	if row[6] != "Friday was cancelled last minute" {
		t.Errorf("issue_details = %q, want flattened text", row[6])
	}
	if row[16] != "1" {
		t.Errorf("reschedule_count = %q, want 1", row[16])
	}
}

func TestResolvedCSVEmpty(t *testing.T) {
	data, err := ResolvedCSV(nil)
	if err != nil {
		t.Fatalf("ResolvedCSV(nil) error = %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 1 {
		t.Errorf("empty export should contain only the header line, got %d lines", got)
	}
}
