package app

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/navigation/pkg/profile"
)

// ErrSessionClosed is returned by operations on a closed Session.
var ErrSessionClosed = errors.New("app: session closed")

// Session drives a profile view model for callers without an event loop of
// their own, such as the headless CLI and the MCP server. Callbacks posted
// by the view model are run inline, under the session lock, while an
// operation waits for the state to settle.
type Session struct {
	mu     sync.Mutex
	vm     *profile.ViewModel
	queue  *profile.Queue
	unsub  func()
	closed bool
}

// OpenSession builds a view model for login. onState, when set, observes
// every state the view model emits.
func (s *Service) OpenSession(login string, onState func(profile.ViewState)) (*Session, error) {
	q := profile.NewQueue(8)
	vm, err := s.NewProfile(login, ProfileOptions{Dispatcher: q})
	if err != nil {
		return nil, err
	}
	sess := &Session{vm: vm, queue: q, unsub: func() {}}
	if onState != nil {
		sess.unsub = vm.OnStateChanged(onState)
	}
	return sess, nil
}

// Login is the login the session was opened for.
func (s *Session) Login() string {
	return s.vm.Login()
}

// ID is the view model's session identifier.
func (s *Session) ID() string {
	return s.vm.Session()
}

// Load sends ViewDidLoad and waits until the view model leaves Loading.
func (s *Session) Load(ctx context.Context) (profile.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.vm.HandleEvent(profile.ViewDidLoad{})
	return s.settle(ctx)
}

// UpdateStatus applies a status change to a loaded profile and returns the
// resulting state.
func (s *Session) UpdateStatus(status string) (profile.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.vm.HandleEvent(profile.UpdateStatus{Status: status})
	return s.vm.State(), nil
}

// State returns the current view state.
func (s *Session) State() profile.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vm.State()
}

// Post returns the post at row of the posts section.
func (s *Session) Post(row int) (profile.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vm.Post(profile.IndexPath{Section: 1, Row: row})
}

// Rows reports NumberOfRows for both sections.
func (s *Session) Rows() (header, posts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vm.NumberOfRows(0), s.vm.NumberOfRows(1)
}

// Close releases the view model. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.unsub()
	s.vm.Close()
}

func (s *Session) settle(ctx context.Context) (profile.ViewState, error) {
	for {
		state := s.vm.State()
		if state.Kind() != profile.StateLoading {
			return state, nil
		}
		if err := s.queue.RunOne(ctx); err != nil {
			return state, err
		}
	}
}
