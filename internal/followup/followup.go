// Package followup surfaces resolved sessions whose review date has
// passed. The filter is pure and idempotent: it never mutates sessions and
// has no acknowledgement state, so due items keep appearing until the
// caller changes what it shows.
package followup

import (
	"sort"
	"time"

	"github.com/concordapp/concord/internal/negotiation"
)

// Due returns every resolved session whose review timestamp is at or
// before now, oldest review first.
func Due(sessions []negotiation.Session, now time.Time) []negotiation.Session {
	var due []negotiation.Session
	for _, s := range sessions {
		if !s.Resolved() || s.ReviewAt == nil {
			continue
		}
		if s.ReviewAt.After(now) {
			continue
		}
		due = append(due, s)
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ReviewAt.Before(*due[j].ReviewAt)
	})
	return due
}
