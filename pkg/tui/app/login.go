package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/navigation/pkg/auth"
	"tableflip.dev/navigation/pkg/tui/events"
)

func (m *Model) initLoginInputs(login string) {
	m.loginInput = newInput("Email or phone", 64)
	m.loginInput.SetValue(login)
	m.passwordInput = newInput("Password", 64)
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '•'
	m.loginFocus = 0
	if login != "" {
		m.loginFocus = 1
	}
}

func (m *Model) focusLoginField(idx int) tea.Cmd {
	m.loginFocus = idx
	if idx == 0 {
		m.passwordInput.Blur()
		return m.loginInput.Focus()
	}
	m.loginInput.Blur()
	return m.passwordInput.Focus()
}

func (m *Model) handleLoginKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		*cmds = append(*cmds, m.focusLoginField(1-m.loginFocus))
		return
	case "enter":
		m.submitLogin(cmds)
		return
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginInput, cmd = m.loginInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	*cmds = append(*cmds, cmd)
}

func (m *Model) submitLogin(cmds *[]tea.Cmd) {
	login := strings.TrimSpace(m.loginInput.Value())
	if err := m.svc.Login(login, m.passwordInput.Value()); err != nil {
		m.showAlert("Ошибка", auth.Message(err), nil)
		return
	}
	m.passwordInput.SetValue("")
	*cmds = append(*cmds, events.LoginCmd(events.LoginScreen, login))
}

func (m *Model) renderLogin() string {
	th := m.theme.Form
	field := func(label string, input textinput.Model, focused bool) string {
		style := th.Label
		if focused {
			style = th.Focused
		}
		return style.Render(label) + "\n" + input.View()
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render("Navigation"),
		"",
		field("Логин", m.loginInput, m.loginFocus == 0),
		"",
		field("Пароль", m.passwordInput, m.loginFocus == 1),
		"",
		th.Button.Render("Log In"),
	)
	return th.Frame.Width(44).Render(body)
}
