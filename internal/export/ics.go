// Package export renders sessions into interchange formats: iCalendar
// events for scheduled conversations and pause agreements, and CSV rows for
// the resolved-session list. Everything here is a pure formatting function
// with no access to the store.
package export

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

const eventDuration = 45 * time.Minute

// Event produces an iCalendar artifact for a single event. date is an ISO
// date (2006-01-02) and timeOfDay is HH:MM; when date is empty the artifact
// has empty start and end fields and should be treated as an agenda, not a
// schedulable event. A present date with an empty time starts at midnight.
func Event(title, description, date, timeOfDay string) []byte {
	var start, end string
	if date != "" {
		if timeOfDay == "" {
			timeOfDay = "00:00"
		}
		if t, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay); err == nil {
			start = t.Format("20060102T150400")
			end = t.Add(eventDuration).Format("20060102T150400")
		}
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//concord//reconciliation//EN",
		"BEGIN:VEVENT",
		"UID:" + eventUID(title, date, timeOfDay),
		"SUMMARY:" + escapeText(title),
		"DESCRIPTION:" + escapeText(description),
		"DTSTART:" + start,
		"DTEND:" + end,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

// escapeText escapes iCalendar TEXT values: backslashes, separators and
// newlines.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// eventUID derives a stable identifier from the event's content, keeping
// Event a pure function.
func eventUID(title, date, timeOfDay string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", title, date, timeOfDay)
	return fmt.Sprintf("%x@concord", h.Sum64())
}
