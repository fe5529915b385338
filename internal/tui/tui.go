// Package tui renders the session board: every session with its current
// step and whose move it is, plus a detail pane for the selected session.
// The board watches the store file and refreshes when another process (the
// other participant's shell, typically) writes it.
package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/concordapp/concord/internal/negotiation"
	"github.com/concordapp/concord/internal/store"
	"github.com/concordapp/concord/internal/util"
)

// keyMap defines the board keybindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// sessionsMsg replaces the board's session list.
type sessionsMsg []negotiation.Session

// storeChangedMsg arrives when the session file was rewritten on disk.
type storeChangedMsg struct{}

// errMsg carries a load failure into the status line.
type errMsg struct{ err error }

// Model is the session board. It reads through the store directly and
// performs no mutations; the verb commands remain the only writers.
type Model struct {
	st     *store.Store
	viewer negotiation.Participant

	sessions []negotiation.Session
	cursor   int

	keys keyMap
	help help.Model

	width   int
	height  int
	errText string

	watchCtx    context.Context
	watchCancel context.CancelFunc
	changes     <-chan struct{}
}

// NewModel creates a board for the given viewer. The viewer determines
// which sessions carry the your-move marker.
func NewModel(st *store.Store, viewer negotiation.Participant) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		st:          st,
		viewer:      viewer,
		keys:        defaultKeys,
		help:        help.New(),
		watchCtx:    ctx,
		watchCancel: cancel,
	}
}

// Run starts the board in the alternate screen and blocks until quit.
func Run(st *store.Store, viewer negotiation.Participant) error {
	m := NewModel(st, viewer)
	defer m.watchCancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessions, m.startWatch)
}

func (m Model) loadSessions() tea.Msg {
	sessions, err := m.st.List()
	if err != nil {
		return errMsg{err}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessionsMsg(sessions)
}

func (m Model) startWatch() tea.Msg {
	changes, err := m.st.Watch(m.watchCtx)
	if err != nil {
		return errMsg{err}
	}
	return watchReadyMsg{changes}
}

type watchReadyMsg struct{ changes <-chan struct{} }

// awaitChange blocks on the watch channel and converts the next write into
// a refresh.
func awaitChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionsMsg:
		m.sessions = msg
		m.errText = ""
		if m.cursor >= len(m.sessions) && len(m.sessions) > 0 {
			m.cursor = len(m.sessions) - 1
		}
		return m, nil

	case watchReadyMsg:
		m.changes = msg.changes
		return m, awaitChange(m.changes)

	case storeChangedMsg:
		return m, tea.Batch(m.loadSessions, awaitChange(m.changes))

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.watchCancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSessions
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("concord"))
	b.WriteString(mutedStyle.Render("  viewing as " + string(m.viewer)))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		b.WriteString(mutedStyle.Render("no sessions yet\n"))
	}
	for i, s := range m.sessions {
		line := m.sessionLine(s)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.sessions) > 0 && m.cursor < len(m.sessions) {
		b.WriteString("\n")
		b.WriteString(detailBorder.Render(m.detail(m.sessions[m.cursor])))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sessionLine(s negotiation.Session) string {
	marker := "  "
	if s.TurnFor(m.viewer) {
		marker = turnStyle.Render("» ")
	}
	line := marker + s.ID + "  " + stepStyle.Render(string(s.Step)) +
		mutedStyle.Render("  "+string(s.Initiator)+" and "+string(s.Recipient))
	if m.width > 0 {
		line = util.EllipsizeANSI(line, m.width)
	}
	return line
}

func (m Model) detail(s negotiation.Session) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, mutedStyle.Render(label+": ")+util.Ellipsize(value, 80))
		}
	}

	add("issue", s.Qualify.Statement)
	add("review", s.Review.Summary)
	if s.Schedule.Confirmed {
		add("scheduled", s.Schedule.Date+" "+s.Schedule.Time)
	}
	add("agreements", s.Outcome.Decisions)
	if s.Resolved() {
		lines = append(lines, "")
		for _, l := range strings.Split(s.Recap, "\n") {
			lines = append(lines, l)
		}
	} else if s.TurnFor(m.viewer) {
		lines = append(lines, "", turnStyle.Render("your move"))
	}
	if len(lines) == 0 {
		return mutedStyle.Render("nothing recorded yet")
	}
	return strings.Join(lines, "\n")
}
