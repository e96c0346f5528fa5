// Package teaui hosts the Bubble Tea program for the navigation TUI.
package teaui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/tui/components/eventviewer"
	"tableflip.dev/navigation/pkg/tui/components/help"
	"tableflip.dev/navigation/pkg/tui/events"
	"tableflip.dev/navigation/pkg/tui/theme"
)

type screen int

const (
	screenLogin screen = iota
	screenProfile
	screenPhotos
)

// Options tweaks a Model. The zero value is what Run uses.
type Options struct {
	// Login prefills the login field.
	Login string
	// Send posts messages into the running program. Run wires
	// tea.Program.Send; tests capture messages instead.
	Send func(tea.Msg)
	// Now is the clock used by the avatar animation.
	Now func() time.Time
}

// sender forwards to a send function that is attached after the program is
// built.
type sender struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *sender) attach(fn func(tea.Msg)) {
	s.mu.Lock()
	s.send = fn
	s.mu.Unlock()
}

func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	fn := s.send
	s.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

// Model contains UI state
type Model struct {
	svc    *app.Service
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	sender *sender
	now    func() time.Time
	theme  theme.Theme

	screen     screen
	termWidth  int
	termHeight int
	alert      *alertState
	status     string

	// login screen
	loginInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int

	// profile screen
	vm          *profile.ViewModel
	login       string
	unsubscribe []func()
	state       profile.ViewState
	cursor      int
	spin        spinner.Model
	statusInput textinput.Model
	editing     bool
	showHelp    bool
	help        *help.Model
	showEvents  bool
	events      *eventviewer.Model
	avatar      avatarAnimation
	watchCancel context.CancelFunc
	statusCh    <-chan string

	// photos screen
	photoCursor int

	// pending collects commands queued by view-model callbacks, which run
	// inside Update but cannot return commands themselves.
	pending []tea.Cmd
}

type alertState struct {
	title   string
	message string
	// onDismiss runs after the alert is closed.
	onDismiss func(cmds *[]tea.Cmd)
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, opts Options) *Model {
	if svc == nil {
		svc = &app.Service{}
	}
	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	snd := &sender{}
	if opts.Send != nil {
		snd.attach(opts.Send)
	}
	ctx, cancel := context.WithCancel(context.Background())

	th := theme.Default()
	m := &Model{
		svc:    svc,
		logger: logger.Named("tui"),
		ctx:    ctx,
		cancel: cancel,
		sender: snd,
		now:    now,
		theme:  th,
		screen: screenLogin,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:   help.New(60, 20),
		events: eventviewer.New(th.Events, 100),
	}
	m.initLoginInputs(opts.Login)
	m.statusInput = newInput("Новый статус", 64)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true
	return ti
}

// Init focuses the login form.
func (m *Model) Init() tea.Cmd {
	return m.focusLoginField(m.loginFocus)
}

// Update routes messages to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if d, ok := msg.(events.Describer); ok {
		m.logger.Debug("message", zap.String("type", typeName(msg)), zap.String("detail", d.Describe()))
		m.logEvent(typeName(msg), d.Describe(), false)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.help.SetSize(min(msg.Width-4, 80), max(msg.Height-4, 8))
		m.events.SetSize(min(msg.Width-2, 100), eventsHeight)
	case events.DispatchMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
	case events.LoginMsg:
		m.openProfile(msg.Login, &cmds)
	case events.PhotosRequestedMsg:
		m.screen = screenPhotos
		m.photoCursor = 0
	case events.StatusChangedMsg:
		if m.vm != nil {
			m.vm.HandleEvent(profile.UpdateStatus{Status: msg.Status})
			m.setStatus("Статус обновлён: " + msg.Status)
		}
		if cmd := m.waitForStatus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case statusWatchStartedMsg:
		m.startStatusWatch(msg, &cmds)
	case statusSavedMsg:
		if msg.err != nil {
			m.logger.Warn("status not saved", zap.Error(msg.err))
			m.setStatus("Статус не сохранён: " + msg.err.Error())
		} else {
			m.setStatus("Статус сохранён")
		}
	case avatarFrameMsg:
		m.advanceAvatar(msg, &cmds)
	case spinner.TickMsg:
		if m.isLoading() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	default:
		m.forwardToInputs(msg, &cmds)
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quit(cmds)
		return
	}
	if m.alert != nil {
		m.handleAlertKey(msg, cmds)
		return
	}
	switch m.screen {
	case screenLogin:
		m.handleLoginKey(msg, cmds)
	case screenProfile:
		m.handleProfileKey(msg, cmds)
	case screenPhotos:
		m.handlePhotosKey(msg)
	}
}

func (m *Model) handleAlertKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "space", "q":
		alert := m.alert
		m.alert = nil
		if alert.onDismiss != nil {
			alert.onDismiss(cmds)
		}
	}
}

func (m *Model) forwardToInputs(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == screenLogin:
		m.loginInput, cmd = m.loginInput.Update(msg)
		*cmds = append(*cmds, cmd)
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		*cmds = append(*cmds, cmd)
	case m.editing:
		m.statusInput, cmd = m.statusInput.Update(msg)
		*cmds = append(*cmds, cmd)
	case m.showHelp:
		*cmds = append(*cmds, m.help.Update(msg))
	case m.showEvents:
		*cmds = append(*cmds, m.events.Update(msg))
	}
}

func (m *Model) showAlert(title, message string, onDismiss func(cmds *[]tea.Cmd)) {
	m.alert = &alertState{title: title, message: message, onDismiss: onDismiss}
}

const eventsHeight = 8

func (m *Model) logEvent(source, text string, failed bool) {
	m.events.Add(eventviewer.Entry{At: m.now(), Source: source, Text: text, Failed: failed})
}

func (m *Model) setStatus(s string) {
	m.status = s
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.closeProfile()
	m.cancel()
	*cmds = append(*cmds, tea.Quit)
}

// View renders the active screen, the footer and any alert.
func (m *Model) View() string {
	if m.avatar.active() {
		return m.renderAvatarOverlay()
	}

	var sections []string
	switch m.screen {
	case screenLogin:
		sections = append(sections, m.renderLogin())
	case screenProfile:
		if m.showHelp {
			sections = append(sections, m.help.View())
		} else {
			sections = append(sections, m.renderProfile())
		}
		if m.showEvents {
			sections = append(sections, m.events.View())
		}
	case screenPhotos:
		sections = append(sections, m.renderPhotos())
	}
	if m.alert != nil {
		sections = append(sections, m.renderAlert())
	}
	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderAlert() string {
	th := m.theme.Modal
	body := th.Title.Render(m.alert.title) + "\n\n" + th.Body.Render(m.alert.message) + "\n\n" +
		m.theme.Footer.Help.Render("enter: OK")
	return th.Frame.Render(body)
}

func (m *Model) renderFooter() string {
	var hints []string
	key := func(k, label string) string {
		return m.theme.Footer.Key.Render(k) + " " + m.theme.Footer.Help.Render(label)
	}
	switch {
	case m.alert != nil:
		return ""
	case m.screen == screenLogin:
		hints = append(hints, key("tab", "switch"), key("enter", "sign in"), key("ctrl+c", "quit"))
	case m.screen == screenPhotos:
		hints = append(hints, key("←↑↓→", "move"), key("esc", "back"))
	case m.editing:
		hints = append(hints, key("enter", "save"), key("esc", "cancel"))
	default:
		hints = append(hints, key("j/k", "move"), key("a", "avatar"), key("s", "status"),
			key("enter", "open"), key("e", "events"), key("?", "help"), key("q", "quit"))
	}
	footer := strings.Join(hints, "  ")
	if m.status != "" {
		footer += "\n" + m.theme.Footer.Status.Render(m.status)
	}
	return footer
}

func typeName(msg tea.Msg) string {
	switch msg.(type) {
	case events.LoginMsg:
		return "login"
	case events.PhotosRequestedMsg:
		return "photos"
	case events.StatusChangedMsg:
		return "status"
	default:
		return "other"
	}
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, opts Options) error {
	m := New(svc, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.sender.attach(p.Send)
	_, err := p.Run()
	m.closeProfile()
	m.cancel()
	return err
}
