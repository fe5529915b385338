package negotiation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)
	s := NewSession(p1, p2, now)

	if s.ID == "" {
		t.Error("ID should not be empty")
	}
	if s.Step != StepQualify {
		t.Errorf("Step = %s, want %s", s.Step, StepQualify)
	}
	if !s.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", s.CreatedAt, now)
	}
	if s.RescheduleCount != 0 {
		t.Errorf("RescheduleCount = %d, want 0", s.RescheduleCount)
	}
	if s.Testimony.Visibility != VisibilityPrivate {
		t.Errorf("Visibility = %s, want %s", s.Testimony.Visibility, VisibilityPrivate)
	}

	// The recipient starts with the pending signal, not the initiator.
	if !s.TurnFor(p2) {
		t.Error("TurnFor(recipient) = false at creation, want true")
	}
	if s.TurnFor(p1) {
		t.Error("TurnFor(initiator) = true at creation, want false")
	}
	if s.TurnFor("mallory") {
		t.Error("TurnFor(outsider) = true, want false")
	}
}

func TestRoleOf(t *testing.T) {
	s := NewSession(p1, p2, time.Now())

	if role, ok := s.RoleOf(p1); !ok || role != RoleInitiator {
		t.Errorf("RoleOf(p1) = %s, %v; want %s, true", role, ok, RoleInitiator)
	}
	if role, ok := s.RoleOf(p2); !ok || role != RoleRecipient {
		t.Errorf("RoleOf(p2) = %s, %v; want %s, true", role, ok, RoleRecipient)
	}
	if _, ok := s.RoleOf("mallory"); ok {
		t.Error("RoleOf(outsider) should not resolve")
	}
}

func TestNextStepOrder(t *testing.T) {
	walk := []Step{StepQualify}
	for step := StepQualify; step != StepResolved; step = next(step) {
		if n := next(step); n != step {
			walk = append(walk, n)
		}
	}
	if len(walk) != len(stepOrder) {
		t.Fatalf("walk length = %d, want %d", len(walk), len(stepOrder))
	}
	for i, step := range stepOrder {
		if walk[i] != step {
			t.Errorf("walk[%d] = %s, want %s", i, walk[i], step)
		}
	}
	if next(StepResolved) != StepResolved {
		t.Error("next(resolved) should stay terminal")
	}
}

func TestRecapPlaceholderWhenUnconfirmed(t *testing.T) {
	s := NewSession(p1, p2, time.Now())
	s.Qualify.Statement = "statement"

	recap := s.synthesizeRecap()
	want := "Scheduled: not scheduled"
	found := false
	for _, line := range strings.Split(recap, "\n") {
		if line == want {
			found = true
		}
	}
	if !found {
		t.Errorf("recap missing %q:\n%s", want, recap)
	}
}

func TestSessionRoundTripsJSON(t *testing.T) {
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	s := NewSession(p1, p2, now)
	s.Step = StepResolved
	s.Recap = "Issue: x"
	s.ResolvedAt = &now
	review := now.Add(ReviewDelay)
	s.ReviewAt = &review

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Step != StepResolved || got.Recap != "Issue: x" {
		t.Errorf("round trip lost fields: step %s recap %q", got.Step, got.Recap)
	}
	if got.ReviewAt == nil || !got.ReviewAt.Equal(review) {
		t.Errorf("ReviewAt = %v, want %v", got.ReviewAt, review)
	}
}
