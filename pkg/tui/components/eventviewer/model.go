// Package eventviewer shows what happened on the profile screen: program
// messages, state transitions and avatar phases, newest first.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/navigation/pkg/tui/theme"
)

const defaultLimit = 200

// Entry is one line of the log.
type Entry struct {
	At     time.Time
	Source string
	Text   string
	Failed bool
}

// Model is a bordered, scrollable event log.
type Model struct {
	styles  theme.EventsTheme
	view    viewport.Model
	entries []Entry
	limit   int

	width, height int
}

// New returns an empty log keeping at most limit entries.
func New(styles theme.EventsTheme, limit int) *Model {
	if limit <= 0 {
		limit = defaultLimit
	}
	m := &Model{
		styles: styles,
		view:   viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		limit:  limit,
	}
	m.render()
	return m
}

// Update forwards scroll keys to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return cmd
}

// SetSize sets the outer size, border included.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 4), max(height, 3)
	// border on both sides, plus the title row
	m.view.SetWidth(m.width - 2)
	m.view.SetHeight(max(1, m.height-3))
	m.render()
}

// View renders the log, or nothing before the first SetSize.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	title := m.styles.Title.Render(fmt.Sprintf("Events (%d)", len(m.entries)))
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.view.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

// Add records e at the top of the log and scrolls back to it.
func (m *Model) Add(e Entry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	m.entries = append([]Entry{e}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	m.render()
	m.view.GotoTop()
}

// Entries returns a copy of the log, newest first.
func (m *Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Clear empties the log.
func (m *Model) Clear() {
	m.entries = nil
	m.render()
}

func (m *Model) render() {
	if len(m.entries) == 0 {
		m.view.SetContent(m.styles.Time.Render("No events yet"))
		return
	}
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		text := m.styles.Text
		if e.Failed {
			text = m.styles.Error
		}
		b.WriteString(m.styles.Time.Render(e.At.Format("15:04:05.000")))
		b.WriteByte(' ')
		if e.Source != "" {
			b.WriteString(m.styles.Source.Render(e.Source))
			b.WriteByte(' ')
		}
		b.WriteString(text.Render(e.Text))
	}
	m.view.SetContent(b.String())
}
