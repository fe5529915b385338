package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/concordapp/concord/internal/errors"
	"github.com/concordapp/concord/internal/negotiation"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	sess := negotiation.NewSession("alice", "ben", time.Now())
	sess.Qualify.Statement = "I feel hurt when plans change"
	if err := s.Put(sess); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Qualify.Statement != sess.Qualify.Statement {
		t.Errorf("Statement = %q, want %q", got.Qualify.Statement, sess.Qualify.Statement)
	}
	if got.Step != negotiation.StepQualify {
		t.Errorf("Step = %s, want %s", got.Step, negotiation.StepQualify)
	}
}

func TestPutReplacesById(t *testing.T) {
	s := newTestStore(t)

	sess := negotiation.NewSession("alice", "ben", time.Now())
	if err := s.Put(sess); err != nil {
		t.Fatal(err)
	}
	sess.Step = negotiation.StepReview
	if err := s.Put(sess); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("List() = %d sessions, want 1", len(sessions))
	}
	if sessions[0].Step != negotiation.StepReview {
		t.Errorf("Step = %s, want replaced record", sessions[0].Step)
	}
}

func TestPutRequiresID(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(negotiation.Session{}); !errors.IsValidation(err) {
		t.Errorf("Put() error = %v, want ValidationError", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, errors.ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	sess := negotiation.NewSession("alice", "ben", time.Now())
	if err := s.Put(sess); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Get(sess.ID); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
}

func TestCorruptionDegradesToEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v, corruption must not fail", err)
	}
	if len(sessions) != 0 {
		t.Errorf("List() = %d sessions, want empty collection", len(sessions))
	}
}

func TestSchemaMismatchDegradesToEmpty(t *testing.T) {
	s := newTestStore(t)
	blob := `{"schema_version": 99, "sessions": [{"id": "s-1"}]}`
	if err := os.WriteFile(s.Path(), []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("List() = %d sessions, want empty for mismatched schema", len(sessions))
	}

	// A write from the empty state wipes the unreadable blob.
	sess := negotiation.NewSession("alice", "ben", time.Now())
	if err := s.Put(sess); err != nil {
		t.Fatal(err)
	}
	sessions, err = s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != sess.ID {
		t.Errorf("after wipe List() = %d sessions, want only the new one", len(sessions))
	}
}

func TestWatchSeesWrites(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := s.Put(negotiation.NewSession("alice", "ben", time.Now())); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after Put()")
	}
}
