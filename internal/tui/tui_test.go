package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/concordapp/concord/internal/negotiation"
	"github.com/concordapp/concord/internal/store"
)

func newTestBoard(t *testing.T, sessions ...negotiation.Session) Model {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, s := range sessions {
		if err := st.Put(s); err != nil {
			t.Fatalf("put session: %v", err)
		}
	}
	m := NewModel(st, "ben")
	t.Cleanup(m.watchCancel)

	msg := m.loadSessions()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestBoardListsSessions(t *testing.T) {
	s := negotiation.NewSession("alice", "ben", time.Now())
	m := newTestBoard(t, s)

	view := m.View()
	if !strings.Contains(view, s.ID) {
		t.Errorf("view does not mention session %s:\n%s", s.ID, view)
	}
	if !strings.Contains(view, string(negotiation.StepQualify)) {
		t.Errorf("view does not show the step:\n%s", view)
	}
}

func TestBoardEmpty(t *testing.T) {
	m := newTestBoard(t)
	if view := m.View(); !strings.Contains(view, "no sessions yet") {
		t.Errorf("empty board missing placeholder:\n%s", view)
	}
}

func TestBoardMarksViewerTurn(t *testing.T) {
	// A fresh session waits on the recipient, which is the test viewer.
	s := negotiation.NewSession("alice", "ben", time.Now())
	m := newTestBoard(t, s)

	if view := m.View(); !strings.Contains(view, "your move") {
		t.Errorf("recipient's turn not marked:\n%s", view)
	}
}

func TestBoardCursorStaysInBounds(t *testing.T) {
	a := negotiation.NewSession("alice", "ben", time.Now())
	b := negotiation.NewSession("alice", "ben", time.Now().Add(time.Second))
	m := newTestBoard(t, a, b)

	down := tea.KeyMsg{Type: tea.KeyDown}
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(down)
		m = updated.(Model)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(up)
		m = updated.(Model)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestBoardRefreshOnStoreChange(t *testing.T) {
	m := newTestBoard(t)

	changes := make(chan struct{}, 1)
	updated, cmd := m.Update(watchReadyMsg{changes})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("watchReadyMsg should schedule a wait on the channel")
	}

	changes <- struct{}{}
	if msg := cmd(); msg != (storeChangedMsg{}) {
		t.Errorf("msg = %#v, want storeChangedMsg", msg)
	}
}
