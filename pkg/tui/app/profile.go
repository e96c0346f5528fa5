package teaui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/tui/events"
)

const (
	avatarWidth  = 14
	avatarHeight = 5
	// headerTop is the row the avatar box starts on: the header frame's
	// top border.
	headerTop = 1
	// avatarLeft is the column of the avatar box inside the header frame.
	avatarLeft = 2
)

type statusWatchStartedMsg struct {
	ch     <-chan string
	cancel context.CancelFunc
	err    error
}

type statusSavedMsg struct {
	err error
}

func (m *Model) openProfile(login string, cmds *[]tea.Cmd) {
	m.closeProfile()

	vm, err := m.svc.NewProfile(login, app.ProfileOptions{
		Dispatcher: events.Dispatcher(m.sender.Send),
		Host:       m.host,
		OnPhotosRequested: func() {
			m.queue(func() tea.Msg { return events.PhotosRequestedMsg{Component: events.ProfileScreen} })
		},
	})
	if err != nil {
		m.showAlert("Ошибка", err.Error(), nil)
		return
	}
	m.vm = vm
	m.login = login
	m.screen = screenProfile
	m.cursor = 0
	m.state = vm.State()
	m.unsubscribe = append(m.unsubscribe,
		vm.OnStateChanged(m.onState),
		vm.OnAvatarAnimation(m.onAnimation),
	)
	vm.HandleEvent(profile.ViewDidLoad{})
	*cmds = append(*cmds, startStatusWatchCmd(m.ctx, m.svc, login))
}

func (m *Model) closeProfile() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
	if m.vm != nil {
		m.vm.Close()
		m.vm = nil
	}
	m.stopStatusWatch()
	m.avatar = avatarAnimation{}
	m.editing = false
	m.showHelp = false
}

// host is the surface the avatar overlay covers: the whole terminal, once
// its size is known.
func (m *Model) host() (profile.Handle, bool) {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return nil, false
	}
	return "terminal", true
}

func (m *Model) onState(state profile.ViewState) {
	m.state = state
	switch s := state.(type) {
	case profile.Loading:
		m.logEvent("state", "loading "+m.login, false)
		m.queue(m.spin.Tick)
	case profile.Loaded:
		m.logEvent("state", "loaded "+s.User.Login, false)
		if last := m.rowCount() - 1; m.cursor > last {
			m.cursor = max(last, 0)
		}
	case profile.Error:
		m.logEvent("state", s.Message, true)
		m.showAlert("Ошибка", s.Message, func(cmds *[]tea.Cmd) {
			m.closeProfile()
			m.state = nil
			m.screen = screenLogin
			*cmds = append(*cmds, m.focusLoginField(1))
		})
	}
}

func (m *Model) isLoading() bool {
	if m.screen != screenProfile || m.state == nil {
		return false
	}
	return m.state.Kind() == profile.StateLoading
}

// rowCount is the number of selectable rows: the photos row plus posts.
func (m *Model) rowCount() int {
	if m.vm == nil {
		return 0
	}
	return m.vm.NumberOfRows(0) + m.vm.NumberOfRows(1)
}

func (m *Model) cursorPath() profile.IndexPath {
	photos := m.vm.NumberOfRows(0)
	if m.cursor < photos {
		return profile.IndexPath{Section: 0, Row: m.cursor}
	}
	return profile.IndexPath{Section: 1, Row: m.cursor - photos}
}

func (m *Model) handleProfileKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if m.vm == nil {
		return
	}
	if m.editing {
		m.handleStatusKey(msg, cmds)
		return
	}
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		default:
			*cmds = append(*cmds, m.help.Update(msg))
		}
		return
	}

	switch msg.String() {
	case "q":
		m.quit(cmds)
	case "?":
		m.showHelp = true
	case "e":
		m.showEvents = !m.showEvents
	case "j", "down":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.vm.HandleEvent(profile.AvatarTapped{View: m.avatarName(), Frame: avatarOrigin()})
	case "x", "esc":
		m.vm.HandleEvent(profile.CloseAvatarTapped{})
	case "enter":
		if m.cursorPath().Section == 0 {
			m.vm.HandleEvent(profile.PhotosCellTapped{})
		}
	case "s":
		if loaded, ok := m.state.(profile.Loaded); ok {
			m.editing = true
			m.statusInput.SetValue(loaded.User.Status)
			m.statusInput.CursorEnd()
			*cmds = append(*cmds, m.statusInput.Focus())
		}
	case "r":
		m.vm.HandleEvent(profile.ViewDidLoad{})
	}
}

func (m *Model) handleStatusKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.statusInput.Blur()
		return
	case "enter":
		status := strings.TrimSpace(m.statusInput.Value())
		m.editing = false
		m.statusInput.Blur()
		m.vm.HandleEvent(profile.UpdateStatus{Status: status})
		*cmds = append(*cmds, saveStatusCmd(m.ctx, m.svc, m.login, status))
		return
	}
	var cmd tea.Cmd
	m.statusInput, cmd = m.statusInput.Update(msg)
	*cmds = append(*cmds, cmd)
}

func saveStatusCmd(ctx context.Context, svc *app.Service, login, status string) tea.Cmd {
	if svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := svc.SetStatus(ctx, login, status)
		return statusSavedMsg{err: err}
	}
}

func startStatusWatchCmd(parent context.Context, svc *app.Service, login string) tea.Cmd {
	if svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.StatusChanges(ctx, login)
		if err != nil {
			cancel()
			return statusWatchStartedMsg{err: err}
		}
		return statusWatchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) startStatusWatch(msg statusWatchStartedMsg, cmds *[]tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("status watch unavailable", zap.Error(msg.err))
		return
	}
	if m.vm == nil {
		msg.cancel()
		return
	}
	m.stopStatusWatch()
	m.statusCh = msg.ch
	m.watchCancel = msg.cancel
	if cmd := m.waitForStatus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) waitForStatus() tea.Cmd {
	if m.statusCh == nil {
		return nil
	}
	ch := m.statusCh
	return func() tea.Msg {
		if status, ok := <-ch; ok {
			return events.StatusChangedMsg{Component: events.StatusWatcher, Status: status}
		}
		return nil
	}
}

func (m *Model) stopStatusWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.statusCh = nil
}

func (m *Model) avatarName() string {
	if loaded, ok := m.state.(profile.Loaded); ok && loaded.User.Avatar != "" {
		return string(loaded.User.Avatar)
	}
	return "avatar"
}

func avatarOrigin() profile.Rect {
	return profile.Rect{X: avatarLeft, Y: headerTop, Width: avatarWidth, Height: avatarHeight}
}

func (m *Model) title() string {
	title := "Профиль"
	if m.svc.Mode.IsDebug() {
		title += " [DEBUG]"
	}
	return title
}

func (m *Model) contentWidth() int {
	if m.termWidth <= 0 {
		return 72
	}
	return max(m.termWidth-2, 32)
}

func (m *Model) renderProfile() string {
	th := m.theme
	var sections []string
	sections = append(sections, th.Header.Name.Render(m.title()))

	switch state := m.state.(type) {
	case profile.Loaded:
		sections = append(sections, m.renderHeader(state))
		sections = append(sections, m.renderRows(state))
	case profile.Error:
		sections = append(sections, th.Header.Status.Render(state.Message))
	default:
		sections = append(sections, m.spin.View()+" Загрузка профиля…")
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(state profile.Loaded) string {
	th := m.theme.Header
	avatar := th.Avatar.Width(avatarWidth - 2).Height(avatarHeight - 2).Render(m.avatarName())

	status := th.Status.Render(state.User.Status)
	if m.editing {
		status = m.theme.Form.Focused.Render("› ") + m.statusInput.View()
	}
	info := lipgloss.JoinVertical(lipgloss.Left,
		th.Name.Render(state.User.FullName),
		"@"+state.User.Login,
		status,
		th.Debug.Render(state.DebugInfo),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Top, avatar, "  ", info)
	return th.Frame.Width(m.contentWidth()).Render(row)
}

func (m *Model) renderRows(state profile.Loaded) string {
	th := m.theme
	width := m.contentWidth()
	var rows []string

	photos := fmt.Sprintf("Photos (%d)  →", len(profile.PhotoNames()))
	if m.cursor == 0 {
		photos = th.Header.Selected.Render("▸ " + photos)
	} else {
		photos = "  " + photos
	}
	rows = append(rows, photos)

	for i := 0; i < m.vm.NumberOfRows(1); i++ {
		post, ok := m.vm.Post(profile.IndexPath{Section: 1, Row: i})
		if !ok {
			continue
		}
		frame := th.Post.Frame
		if m.cursor == i+1 {
			frame = th.Post.Selected
		}
		inner := max(width-frame.GetHorizontalFrameSize(), 16)
		body := lipgloss.JoinVertical(lipgloss.Left,
			th.Post.Author.Render(post.Author),
			th.Post.Image.Render("[ "+post.ImageName+" ]"),
			th.Post.Body.Render(wordwrap.String(post.Description, inner)),
			th.Post.Counters.Render(fmt.Sprintf("Likes: %d    Views: %d", post.Likes, post.Views)),
		)
		rows = append(rows, frame.Width(width).Render(body))
	}
	return strings.Join(rows, "\n")
}
