package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLoadDelay simulates backend latency before a successful load lands.
const DefaultLoadDelay = 500 * time.Millisecond

// Config wires a ViewModel. Lookup is required; everything else has a
// usable zero value.
type Config struct {
	// Login is resolved through Lookup on ViewDidLoad.
	Login  string
	Lookup UserLookup
	Mode   Mode

	// LoadDelay is applied to successful lookups before Loaded is emitted.
	// Zero uses DefaultLoadDelay; negative disables the delay.
	LoadDelay time.Duration

	// Dispatcher marshals load results back to the owning goroutine. Nil
	// applies results on the worker goroutine.
	Dispatcher Dispatcher

	// Host returns the surface overlays attach to. Without a host the avatar
	// animation never starts.
	Host func() (Handle, bool)

	// Posts replaces the seed posts.
	Posts []Post

	// OnPhotosRequested is called for PhotosCellTapped.
	OnPhotosRequested func()

	Logger *zap.Logger
}

// ViewModel is the state store and event handler behind one profile screen.
// Events and queries are safe to call from any goroutine, but subscribers are
// only ever called from HandleEvent or from callbacks run by the Dispatcher.
type ViewModel struct {
	login      string
	lookup     UserLookup
	mode       Mode
	loadDelay  time.Duration
	dispatcher Dispatcher
	host       func() (Handle, bool)
	onPhotos   func()
	logger     *zap.Logger
	session    string

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      ViewState
	posts      []Post
	generation uint64
	seq        sequencer
	closed     bool

	nextSub   int
	stateSubs []stateSub
	animSubs  []animSub
}

type stateSub struct {
	id int
	fn func(ViewState)
}

type animSub struct {
	id int
	fn func(AnimationEvent)
}

// New builds a view model seeded with cfg.Posts (or SeedPosts). The initial
// state is Loading.
func New(cfg Config) (*ViewModel, error) {
	if cfg.Lookup == nil {
		return nil, errors.New("profile: user lookup is required")
	}
	posts := cfg.Posts
	if posts == nil {
		posts = SeedPosts()
	}
	delay := cfg.LoadDelay
	switch {
	case delay == 0:
		delay = DefaultLoadDelay
	case delay < 0:
		delay = 0
	}
	dispatcher := cfg.Dispatcher
	if dispatcher == nil {
		dispatcher = DispatcherFunc(func(fn func()) { fn() })
	}
	host := cfg.Host
	if host == nil {
		host = func() (Handle, bool) { return nil, false }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	session := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	return &ViewModel{
		login:      cfg.Login,
		lookup:     cfg.Lookup,
		mode:       cfg.Mode,
		loadDelay:  delay,
		dispatcher: dispatcher,
		host:       host,
		onPhotos:   cfg.OnPhotosRequested,
		logger:     logger.With(zap.String("session", session), zap.String("login", cfg.Login)),
		session:    session,
		ctx:        ctx,
		cancel:     cancel,
		state:      Loading{},
		posts:      posts,
	}, nil
}

// Session identifies this view model in logs.
func (vm *ViewModel) Session() string { return vm.session }

// Login is the login this view model loads.
func (vm *ViewModel) Login() string { return vm.login }

// Mode is the flavour chosen at construction.
func (vm *ViewModel) Mode() Mode { return vm.mode }

// State returns the current view state.
func (vm *ViewModel) State() ViewState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// AnimationPhase returns where the avatar sequencer currently is.
func (vm *ViewModel) AnimationPhase() Phase {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.seq.phase
}

// OnStateChanged subscribes fn to state changes and returns a function that
// removes the subscription.
func (vm *ViewModel) OnStateChanged(fn func(ViewState)) (unsubscribe func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.nextSub++
	id := vm.nextSub
	vm.stateSubs = append(vm.stateSubs, stateSub{id: id, fn: fn})
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		for i, s := range vm.stateSubs {
			if s.id == id {
				vm.stateSubs = append(vm.stateSubs[:i:i], vm.stateSubs[i+1:]...)
				return
			}
		}
	}
}

// OnAvatarAnimation subscribes fn to animation events and returns a function
// that removes the subscription.
func (vm *ViewModel) OnAvatarAnimation(fn func(AnimationEvent)) (unsubscribe func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.nextSub++
	id := vm.nextSub
	vm.animSubs = append(vm.animSubs, animSub{id: id, fn: fn})
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		for i, s := range vm.animSubs {
			if s.id == id {
				vm.animSubs = append(vm.animSubs[:i:i], vm.animSubs[i+1:]...)
				return
			}
		}
	}
}

// Close cancels any pending load and drops every subscriber. Events received
// afterwards are ignored.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return
	}
	vm.closed = true
	vm.cancel()
	vm.stateSubs = nil
	vm.animSubs = nil
	vm.logger.Debug("view model closed")
}

// HandleEvent applies ev. Unknown events and events that make no sense in
// the current state are no-ops.
func (vm *ViewModel) HandleEvent(ev Event) {
	if vm.isClosed() {
		return
	}
	switch ev := ev.(type) {
	case ViewDidLoad:
		vm.load()
	case AvatarTapped:
		vm.avatarTapped(ev)
	case AvatarExpanded:
		vm.step("expanded", func() (AnimationEvent, bool) { return vm.seq.expanded() })
	case CloseAvatarTapped:
		vm.step("close", func() (AnimationEvent, bool) { return vm.seq.close() })
	case AvatarCollapsed:
		vm.mu.Lock()
		done := vm.seq.collapsed()
		vm.mu.Unlock()
		if !done {
			vm.logger.Debug("collapse reported without a running animation")
		}
	case PhotosCellTapped:
		vm.logger.Info("photos cell tapped")
		if vm.onPhotos != nil {
			vm.onPhotos()
		}
	case UpdateStatus:
		vm.updateStatus(ev.Status)
	default:
		vm.logger.Debug("ignoring unknown event", zap.Any("event", ev))
	}
}

// NumberOfSections is fixed: the header section and the posts section.
func (vm *ViewModel) NumberOfSections() int {
	return 2
}

// NumberOfRows returns 1 for the header section, the post count of the
// loaded state for the posts section, and 0 for anything else.
func (vm *ViewModel) NumberOfRows(section int) int {
	switch section {
	case 0:
		return 1
	case 1:
		return len(vm.loadedPosts())
	default:
		return 0
	}
}

// Post returns the post at path. Only section 1 has posts.
func (vm *ViewModel) Post(path IndexPath) (Post, bool) {
	if path.Section != 1 || path.Row < 0 {
		return Post{}, false
	}
	posts := vm.loadedPosts()
	if path.Row >= len(posts) {
		return Post{}, false
	}
	return posts[path.Row], true
}

func (vm *ViewModel) loadedPosts() []Post {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if loaded, ok := vm.state.(Loaded); ok {
		return loaded.Posts
	}
	return nil
}

func (vm *ViewModel) isClosed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.closed
}

func (vm *ViewModel) load() {
	vm.mu.Lock()
	vm.generation++
	generation := vm.generation
	vm.mu.Unlock()

	vm.logger.Debug("loading profile", zap.Uint64("generation", generation))
	vm.setState(Loading{})
	go vm.fetch(generation)
}

func (vm *ViewModel) fetch(generation uint64) {
	user, err := vm.lookup.LookupUser(vm.ctx, vm.login)
	if err == nil && vm.loadDelay > 0 {
		timer := time.NewTimer(vm.loadDelay)
		select {
		case <-vm.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
	if vm.ctx.Err() != nil {
		return
	}
	vm.dispatcher.Dispatch(func() {
		vm.finishLoad(generation, user, err)
	})
}

func (vm *ViewModel) finishLoad(generation uint64, user User, err error) {
	vm.mu.Lock()
	stale := vm.closed || generation != vm.generation
	posts := vm.posts
	vm.mu.Unlock()
	if stale {
		vm.logger.Debug("dropping stale load result", zap.Uint64("generation", generation))
		return
	}

	if err != nil {
		vm.logger.Warn("user lookup failed", zap.Error(err))
		vm.setState(Error{Message: MessageUserNotFound})
		return
	}
	vm.logger.Info("profile loaded", zap.String("fullName", user.FullName), zap.Int("posts", len(posts)))
	vm.setState(Loaded{User: user, Posts: posts, DebugInfo: vm.mode.DebugInfo()})
}

func (vm *ViewModel) updateStatus(status string) {
	vm.mu.Lock()
	loaded, ok := vm.state.(Loaded)
	if !ok || vm.closed {
		vm.mu.Unlock()
		vm.logger.Debug("status update ignored, profile not loaded")
		return
	}
	// Check and replace in one critical section so a load landing in
	// between is never overwritten by this stale copy.
	loaded.User = loaded.User.WithStatus(status)
	vm.state = loaded
	subs := append([]stateSub(nil), vm.stateSubs...)
	vm.mu.Unlock()

	for _, s := range subs {
		s.fn(loaded)
	}
}

func (vm *ViewModel) avatarTapped(ev AvatarTapped) {
	host, ok := vm.host()
	if !ok {
		vm.logger.Debug("avatar tap ignored, no host surface")
		return
	}
	vm.step("start", func() (AnimationEvent, bool) { return vm.seq.start(ev.View, ev.Frame, host) })
}

// step advances the sequencer under the lock and emits the resulting event.
func (vm *ViewModel) step(name string, advance func() (AnimationEvent, bool)) {
	vm.mu.Lock()
	from := vm.seq.phase
	ev, ok := advance()
	subs := append([]animSub(nil), vm.animSubs...)
	vm.mu.Unlock()

	if !ok {
		vm.logger.Debug("animation step ignored", zap.String("step", name), zap.Stringer("phase", from))
		return
	}
	for _, s := range subs {
		s.fn(ev)
	}
}

func (vm *ViewModel) setState(state ViewState) {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.state = state
	subs := append([]stateSub(nil), vm.stateSubs...)
	vm.mu.Unlock()

	for _, s := range subs {
		s.fn(state)
	}
}
