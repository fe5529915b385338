package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/concordapp/concord/internal/negotiation"
)

// csvHeader is the fixed column set for the resolved-session export.
var csvHeader = []string{
	"id",
	"initiator",
	"recipient",
	"created_at",
	"resolved_at",
	"issue_statement",
	"issue_details",
	"schedule_date",
	"schedule_time",
	"schedule_descriptor",
	"agreements",
	"apology",
	"follow_up_plan",
	"recap",
	"testimony_text",
	"testimony_visibility",
	"reschedule_count",
}

// ResolvedCSV renders every resolved session as one CSV row. Embedded
// newlines are flattened to spaces; quoting and ""-escaping follow the CSV
// writer's rules. Unresolved sessions are skipped.
func ResolvedCSV(sessions []negotiation.Session) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range sessions {
		if !s.Resolved() {
			continue
		}
		row := []string{
			s.ID,
			string(s.Initiator),
			string(s.Recipient),
			isoTime(&s.CreatedAt),
			isoTime(s.ResolvedAt),
			flatten(s.Qualify.Statement),
			flatten(s.Qualify.Details),
			s.Schedule.Date,
			s.Schedule.Time,
			flatten(s.Schedule.Descriptor),
			flatten(s.Outcome.Decisions),
			flatten(s.Outcome.Apology),
			flatten(s.Outcome.FollowUpPlan),
			flatten(s.Recap),
			flatten(s.Testimony.Text),
			string(s.Testimony.Visibility),
			fmt.Sprintf("%d", s.RescheduleCount),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row for %s: %w", s.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten replaces embedded newlines with single spaces.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// isoTime formats a timestamp as RFC 3339, or empty when absent.
func isoTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
