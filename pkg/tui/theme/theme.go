package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer  FooterTheme
	Header  HeaderTheme
	Post    PostTheme
	Form    FormTheme
	Overlay OverlayTheme
	Modal   ModalTheme
	Events  EventsTheme
}

// FooterTheme groups styles used by the bottom status/key bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Key    lipgloss.Style
}

// HeaderTheme styles the profile header row.
type HeaderTheme struct {
	Frame    lipgloss.Style
	Avatar   lipgloss.Style
	Name     lipgloss.Style
	Status   lipgloss.Style
	Debug    lipgloss.Style
	Selected lipgloss.Style
}

// PostTheme styles one post cell.
type PostTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Author   lipgloss.Style
	Image    lipgloss.Style
	Body     lipgloss.Style
	Counters lipgloss.Style
}

// FormTheme styles the login form.
type FormTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Button  lipgloss.Style
}

// OverlayTheme styles the zoomed avatar and its dimmed backdrop.
type OverlayTheme struct {
	Backdrop lipgloss.Style
	Avatar   lipgloss.Style
}

// ModalTheme styles centered alerts.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// EventsTheme styles the event log pane.
type EventsTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Time   lipgloss.Style
	Source lipgloss.Style
	Text   lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
			Key:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Header: HeaderTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Avatar: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("255")).
				Align(lipgloss.Center, lipgloss.Center),
			Name:     lipgloss.NewStyle().Bold(true),
			Status:   lipgloss.NewStyle().Foreground(muted),
			Debug:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Post: PostTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				Padding(0, 1),
			Selected: lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, true, false).
				BorderForeground(accent).
				Padding(0, 1),
			Author:   lipgloss.NewStyle().Bold(true),
			Image:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			Body:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Counters: lipgloss.NewStyle().Foreground(muted),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
			Label:   lipgloss.NewStyle().Foreground(muted),
			Focused: lipgloss.NewStyle().Foreground(accent),
			Button: lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25")).
				Padding(0, 2),
		},
		Overlay: OverlayTheme{
			Backdrop: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Avatar:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Events: EventsTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")),
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Time:   lipgloss.NewStyle().Foreground(muted),
			Source: lipgloss.NewStyle().Foreground(accent),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
	}
}
