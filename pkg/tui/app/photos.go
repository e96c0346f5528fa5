package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/navigation/pkg/profile"
)

const (
	photoColumns   = 3
	photoCellWidth = 12
)

func (m *Model) handlePhotosKey(msg tea.KeyPressMsg) {
	count := len(profile.PhotoNames())
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen = screenProfile
	case "l", "right":
		if m.photoCursor < count-1 {
			m.photoCursor++
		}
	case "h", "left":
		if m.photoCursor > 0 {
			m.photoCursor--
		}
	case "j", "down":
		if m.photoCursor+photoColumns < count {
			m.photoCursor += photoColumns
		}
	case "k", "up":
		if m.photoCursor-photoColumns >= 0 {
			m.photoCursor -= photoColumns
		}
	}
}

func (m *Model) renderPhotos() string {
	th := m.theme
	names := profile.PhotoNames()
	cell := lipgloss.NewStyle().Width(photoCellWidth).Border(lipgloss.RoundedBorder()).Align(lipgloss.Center)
	selected := cell.BorderForeground(lipgloss.Color("212")).Bold(true)

	var rows []string
	for start := 0; start < len(names); start += photoColumns {
		var cells []string
		for i := start; i < min(start+photoColumns, len(names)); i++ {
			style := cell
			if i == m.photoCursor {
				style = selected
			}
			cells = append(cells, style.Render(names[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	title := th.Header.Name.Render(fmt.Sprintf("Photo Gallery (%d/%d)", m.photoCursor+1, len(names)))
	return title + "\n" + strings.Join(rows, "\n")
}
