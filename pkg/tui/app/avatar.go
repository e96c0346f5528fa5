package teaui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/navigation/pkg/profile"
)

const frameInterval = time.Second / 30

type avatarStep int

const (
	avatarIdle avatarStep = iota
	avatarGrowing
	avatarShown
	avatarShrinking
)

// avatarAnimation mirrors the view model's choreography with wall-clock
// progress so each frame can be drawn.
type avatarAnimation struct {
	step    avatarStep
	name    string
	origin  profile.Rect
	zoomed  profile.Rect
	started time.Time
	// closeVisible is set once AddCloseControl arrived.
	closeVisible bool
	closeShown   time.Time
	// frame changes with every phase so ticks from an earlier phase are
	// dropped.
	frame int
}

type avatarFrameMsg struct {
	frame int
}

func (a avatarAnimation) active() bool {
	return a.step != avatarIdle
}

func (m *Model) bounds() profile.Rect {
	return profile.Rect{Width: m.termWidth, Height: m.termHeight}
}

// onAnimation receives the view model's instructions.
func (m *Model) onAnimation(ev profile.AnimationEvent) {
	now := m.now()
	switch ev := ev.(type) {
	case profile.StartAnimation:
		name, _ := ev.Source.(string)
		m.avatar = avatarAnimation{
			step:    avatarGrowing,
			name:    name,
			origin:  ev.Frame,
			zoomed:  profile.ZoomedRect(ev.Frame, inset(m.bounds(), 2)),
			started: now,
			frame:   m.avatar.frame + 1,
		}
		m.queue(m.tickAvatar())
		m.logEvent("avatar", "expand "+name, false)
	case profile.AddCloseControl:
		m.avatar.step = avatarShown
		m.avatar.closeVisible = true
		m.avatar.closeShown = now
		m.avatar.frame++
		m.queue(m.tickAvatar())
	case profile.FinishAnimation:
		m.logEvent("avatar", "collapse", false)
		m.avatar.step = avatarShrinking
		m.avatar.origin = ev.Origin
		m.avatar.started = now
		m.avatar.frame++
		m.queue(m.tickAvatar())
	}
}

func (m *Model) tickAvatar() tea.Cmd {
	frame := m.avatar.frame
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return avatarFrameMsg{frame: frame}
	})
}

// advanceAvatar reports finished phases back to the view model and keeps
// ticking while something is moving.
func (m *Model) advanceAvatar(msg avatarFrameMsg, cmds *[]tea.Cmd) {
	if msg.frame != m.avatar.frame || !m.avatar.active() || m.vm == nil {
		return
	}
	elapsed := m.now().Sub(m.avatar.started)
	switch m.avatar.step {
	case avatarGrowing:
		if elapsed >= profile.ExpandDuration {
			m.vm.HandleEvent(profile.AvatarExpanded{})
			return
		}
	case avatarShown:
		if m.now().Sub(m.avatar.closeShown) >= profile.CloseFadeDuration {
			return
		}
	case avatarShrinking:
		if elapsed >= profile.CloseFadeDuration+profile.CollapseDuration {
			m.vm.HandleEvent(profile.AvatarCollapsed{})
			m.avatar = avatarAnimation{frame: m.avatar.frame}
			return
		}
	}
	*cmds = append(*cmds, m.tickAvatar())
}

// geometry returns the avatar rectangle, the backdrop opacity and the close
// control opacity for the current frame.
func (m *Model) geometry() (profile.Rect, float64, float64) {
	a := m.avatar
	now := m.now()
	switch a.step {
	case avatarGrowing:
		t := fraction(now.Sub(a.started), profile.ExpandDuration)
		return profile.Interpolate(a.origin, a.zoomed, t), profile.OverlayMaxOpacity * t, 0
	case avatarShown:
		return a.zoomed, profile.OverlayMaxOpacity, fraction(now.Sub(a.closeShown), profile.CloseFadeDuration)
	case avatarShrinking:
		elapsed := now.Sub(a.started)
		if elapsed < profile.CloseFadeDuration {
			return a.zoomed, profile.OverlayMaxOpacity, 1 - fraction(elapsed, profile.CloseFadeDuration)
		}
		t := fraction(elapsed-profile.CloseFadeDuration, profile.CollapseDuration)
		return profile.Interpolate(a.zoomed, a.origin, t), profile.OverlayMaxOpacity * (1 - t), 0
	default:
		return a.origin, 0, 0
	}
}

func fraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return profile.Progress(float64(elapsed) / float64(total))
}

func inset(r profile.Rect, n int) profile.Rect {
	if r.Width <= 2*n || r.Height <= 2*n {
		return r
	}
	return profile.Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
}

// shade maps backdrop opacity to a block character.
func shade(opacity float64) rune {
	switch {
	case opacity <= 0.05:
		return ' '
	case opacity < 0.3:
		return '░'
	case opacity < 0.6:
		return '▒'
	default:
		return '▓'
	}
}

// renderAvatarOverlay draws the backdrop over the whole terminal with the
// avatar box on top.
func (m *Model) renderAvatarOverlay() string {
	width, height := m.termWidth, m.termHeight
	if width <= 0 || height <= 0 {
		return ""
	}
	rect, backdrop, closeAlpha := m.geometry()

	grid := make([][]rune, height)
	fill := shade(backdrop)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(fill), width))
	}
	drawBox(grid, rect, m.avatar.name)
	if m.avatar.closeVisible && closeAlpha > 0.5 {
		c := profile.CloseControlRect(rect)
		put(grid, c.X, c.Y, "["+profile.CloseControlLabel+"]")
	}

	th := m.theme.Overlay
	lines := make([]string, height)
	for y, row := range grid {
		if y < rect.Y || y >= rect.Y+rect.Height {
			lines[y] = th.Backdrop.Render(string(row))
			continue
		}
		x0 := clamp(rect.X, 0, width)
		x1 := clamp(rect.X+rect.Width, 0, width)
		lines[y] = th.Backdrop.Render(string(row[:x0])) +
			th.Avatar.Render(string(row[x0:x1])) +
			th.Backdrop.Render(string(row[x1:]))
	}
	return strings.Join(lines, "\n")
}

func drawBox(grid [][]rune, r profile.Rect, label string) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X; x <= right; x++ {
		for y := r.Y; y <= bottom; y++ {
			ch := ' '
			switch {
			case (x == r.X || x == right) && (y == r.Y || y == bottom):
				ch = corner(x == r.X, y == r.Y)
			case y == r.Y || y == bottom:
				ch = '═'
			case x == r.X || x == right:
				ch = '║'
			}
			set(grid, x, y, ch)
		}
	}
	if r.Height >= 3 && label != "" {
		runes := []rune(label)
		if room := r.Width - 2; len(runes) > room {
			runes = runes[:room]
		}
		x := r.X + (r.Width-len(runes))/2
		put(grid, x, r.Y+r.Height/2, string(runes))
	}
}

func corner(left, top bool) rune {
	switch {
	case left && top:
		return '╔'
	case top:
		return '╗'
	case left:
		return '╚'
	default:
		return '╝'
	}
}

func put(grid [][]rune, x, y int, s string) {
	for i, ch := range []rune(s) {
		set(grid, x+i, y, ch)
	}
}

func set(grid [][]rune, x, y int, ch rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = ch
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
