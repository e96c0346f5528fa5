package profile

import "time"

// Durations of the avatar choreography.
const (
	ExpandDuration     = 500 * time.Millisecond
	CloseFadeDuration  = 300 * time.Millisecond
	CollapseDuration   = 500 * time.Millisecond
	OverlayMaxOpacity  = 0.7
	CloseControlLabel  = "✕"
	closeControlInsetX = 2
)

// AnimationEvent is emitted on the animation side channel. It is one of
// StartAnimation, AddCloseControl or FinishAnimation.
type AnimationEvent interface {
	Phase() Phase
	isAnimationEvent()
}

// StartAnimation asks the UI to grow the avatar from Frame to the centered
// zoomed rectangle. The UI reports completion with AvatarExpanded.
type StartAnimation struct {
	Source Handle
	Frame  Rect
}

// AddCloseControl asks the UI to fade in the dismiss control on Host.
type AddCloseControl struct {
	Host Handle
}

// FinishAnimation asks the UI to fade out the control, shrink the avatar back
// to its origin and remove the overlay. The UI reports completion with
// AvatarCollapsed.
type FinishAnimation struct {
	Origin Rect
}

func (StartAnimation) Phase() Phase  { return PhaseExpanding }
func (AddCloseControl) Phase() Phase { return PhaseExpanded }
func (FinishAnimation) Phase() Phase { return PhaseCollapsing }

func (StartAnimation) isAnimationEvent()  {}
func (AddCloseControl) isAnimationEvent() {}
func (FinishAnimation) isAnimationEvent() {}

// Phase is the sequencer position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExpanding
	PhaseExpanded
	PhaseCollapsing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExpanding:
		return "expanding"
	case PhaseExpanded:
		return "expanded"
	case PhaseCollapsing:
		return "collapsing"
	default:
		return "unknown"
	}
}

// sequencer enforces start → close control → finish. Each step is only
// accepted from the phase right before it; anything else is refused.
type sequencer struct {
	phase  Phase
	origin Rect
	host   Handle
}

func (s *sequencer) start(source Handle, frame Rect, host Handle) (AnimationEvent, bool) {
	if s.phase != PhaseIdle {
		return nil, false
	}
	s.phase = PhaseExpanding
	s.origin = frame
	s.host = host
	return StartAnimation{Source: source, Frame: frame}, true
}

func (s *sequencer) expanded() (AnimationEvent, bool) {
	if s.phase != PhaseExpanding {
		return nil, false
	}
	s.phase = PhaseExpanded
	return AddCloseControl{Host: s.host}, true
}

func (s *sequencer) close() (AnimationEvent, bool) {
	if s.phase != PhaseExpanded {
		return nil, false
	}
	s.phase = PhaseCollapsing
	return FinishAnimation{Origin: s.origin}, true
}

func (s *sequencer) collapsed() bool {
	if s.phase != PhaseCollapsing {
		return false
	}
	*s = sequencer{}
	return true
}

// ZoomedRect is the centered rectangle the avatar grows into inside bounds.
// It keeps the origin's aspect ratio and fills the bounds' width (or height,
// whichever runs out first).
func ZoomedRect(origin, bounds Rect) Rect {
	if bounds.Empty() {
		return origin
	}
	w, h := origin.Width, origin.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	targetW := bounds.Width
	targetH := targetW * h / w
	if targetH > bounds.Height {
		targetH = bounds.Height
		targetW = targetH * w / h
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}
	return Rect{
		X:      bounds.X + (bounds.Width-targetW)/2,
		Y:      bounds.Y + (bounds.Height-targetH)/2,
		Width:  targetW,
		Height: targetH,
	}
}

// Interpolate returns the rectangle at progress t (clamped to [0,1]) between
// from and to.
func Interpolate(from, to Rect, t float64) Rect {
	t = Progress(t)
	lerp := func(a, b int) int {
		return a + int(float64(b-a)*t+0.5)
	}
	return Rect{
		X:      lerp(from.X, to.X),
		Y:      lerp(from.Y, to.Y),
		Width:  lerp(from.Width, to.Width),
		Height: lerp(from.Height, to.Height),
	}
}

// Progress clamps t to [0,1].
func Progress(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// CloseControlRect places the dismiss control in the top-right corner of
// the zoomed avatar.
func CloseControlRect(zoomed Rect) Rect {
	w := len([]rune(CloseControlLabel)) + closeControlInsetX
	return Rect{X: zoomed.X + zoomed.Width - w, Y: zoomed.Y, Width: w, Height: 1}
}
