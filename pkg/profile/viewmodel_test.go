package profile

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type stubLookup struct {
	mu    sync.Mutex
	fail  bool
	calls []string
	user  *User
}

func (s *stubLookup) LookupUser(_ context.Context, login string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, login)
	if s.fail {
		return User{}, errors.New("no such user")
	}
	if s.user != nil {
		return *s.user, nil
	}
	return User{Login: login, FullName: "Test User", Status: "Online"}, nil
}

type recorder struct {
	states []ViewState
	anims  []AnimationEvent
}

func newTestModel(t *testing.T, lookup UserLookup, opts ...func(*Config)) (*ViewModel, *Queue, *recorder) {
	t.Helper()
	q := NewQueue(4)
	cfg := Config{
		Login:      "test_user",
		Lookup:     lookup,
		Mode:       ModeDebug,
		LoadDelay:  -1,
		Dispatcher: q,
		Host:       func() (Handle, bool) { return "window", true },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	vm, err := New(cfg)
	if err != nil {
		t.Fatalf("new view model: %v", err)
	}
	t.Cleanup(vm.Close)
	rec := &recorder{}
	vm.OnStateChanged(func(s ViewState) { rec.states = append(rec.states, s) })
	vm.OnAvatarAnimation(func(ev AnimationEvent) { rec.anims = append(rec.anims, ev) })
	return vm, q, rec
}

func runOne(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.RunOne(ctx); err != nil {
		t.Fatalf("waiting for dispatched load: %v", err)
	}
}

func loadModel(t *testing.T, vm *ViewModel, q *Queue) {
	t.Helper()
	vm.HandleEvent(ViewDidLoad{})
	runOne(t, q)
}

func TestNewRequiresLookup(t *testing.T) {
	if _, err := New(Config{Login: "x"}); err == nil {
		t.Fatal("expected error without lookup")
	}
}

func TestInitialStateIsLoading(t *testing.T) {
	vm, _, _ := newTestModel(t, &stubLookup{})
	if got := vm.State().Kind(); got != StateLoading {
		t.Fatalf("initial state = %v, want loading", got)
	}
	if vm.Session() == "" {
		t.Fatal("expected a session id")
	}
}

func TestViewDidLoadSuccess(t *testing.T) {
	vm, q, rec := newTestModel(t, &stubLookup{})
	loadModel(t, vm, q)

	if len(rec.states) != 2 {
		t.Fatalf("expected Loading then Loaded, got %d states: %#v", len(rec.states), rec.states)
	}
	if rec.states[0].Kind() != StateLoading {
		t.Fatalf("first state = %v, want loading", rec.states[0].Kind())
	}
	loaded, ok := rec.states[1].(Loaded)
	if !ok {
		t.Fatalf("second state = %#v, want Loaded", rec.states[1])
	}
	if loaded.User.Login != "test_user" {
		t.Fatalf("login = %q, want test_user", loaded.User.Login)
	}
	if loaded.User.FullName != "Test User" || loaded.User.Status != "Online" {
		t.Fatalf("unexpected user %#v", loaded.User)
	}
	if len(loaded.Posts) != 4 {
		t.Fatalf("posts = %d, want 4", len(loaded.Posts))
	}
	if loaded.DebugInfo == "" {
		t.Fatal("expected debug info")
	}
	if q.Pending() != 0 {
		t.Fatalf("expected exactly one dispatched result, %d pending", q.Pending())
	}
}

func TestViewDidLoadUserNotFound(t *testing.T) {
	vm, q, rec := newTestModel(t, &stubLookup{fail: true})
	loadModel(t, vm, q)

	var terminal []ViewState
	for _, s := range rec.states {
		if s.Kind() != StateLoading {
			terminal = append(terminal, s)
		}
	}
	if len(terminal) != 1 {
		t.Fatalf("expected a single terminal state, got %#v", terminal)
	}
	e, ok := terminal[0].(Error)
	if !ok {
		t.Fatalf("terminal state = %#v, want Error", terminal[0])
	}
	if e.Message != "Пользователь не найден" {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestDebugInfoFollowsMode(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		want string
	}{
		{ModeDebug, "Debug сборка - Тестовый пользователь"},
		{ModeRelease, "Release сборка - Продакшен пользователь"},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			vm, q, _ := newTestModel(t, &stubLookup{}, func(c *Config) { c.Mode = tc.mode })
			loadModel(t, vm, q)
			loaded := vm.State().(Loaded)
			if loaded.DebugInfo != tc.want {
				t.Fatalf("debug info = %q, want %q", loaded.DebugInfo, tc.want)
			}
		})
	}
}

func TestUpdateStatusKeepsPostsAndDebugInfo(t *testing.T) {
	vm, q, rec := newTestModel(t, &stubLookup{})
	loadModel(t, vm, q)
	before := vm.State().(Loaded)

	vm.HandleEvent(UpdateStatus{Status: "Busy. Do not disturb"})

	after, ok := vm.State().(Loaded)
	if !ok {
		t.Fatalf("state after update = %#v", vm.State())
	}
	if after.User.Status != "Busy. Do not disturb" {
		t.Fatalf("status = %q", after.User.Status)
	}
	if after.User.Login != before.User.Login || after.User.FullName != before.User.FullName {
		t.Fatalf("user identity changed: %#v -> %#v", before.User, after.User)
	}
	if after.DebugInfo != before.DebugInfo {
		t.Fatalf("debug info changed: %q -> %q", before.DebugInfo, after.DebugInfo)
	}
	if len(after.Posts) != len(before.Posts) || &after.Posts[0] != &before.Posts[0] {
		t.Fatal("posts were replaced by a status update")
	}
	if got := rec.states[len(rec.states)-1]; got.Kind() != StateLoaded {
		t.Fatalf("last emitted state = %v", got.Kind())
	}
}

func TestUpdateStatusBeforeLoadIsNoop(t *testing.T) {
	vm, _, rec := newTestModel(t, &stubLookup{})
	vm.HandleEvent(UpdateStatus{Status: "away"})
	if len(rec.states) != 0 {
		t.Fatalf("expected no emission, got %#v", rec.states)
	}
	if vm.State().Kind() != StateLoading {
		t.Fatalf("state = %v", vm.State().Kind())
	}
}

func TestUpdateStatusNeverRevertsAReload(t *testing.T) {
	for i := 0; i < 200; i++ {
		q := NewQueue(4)
		vm, err := New(Config{Login: "test_user", Lookup: &stubLookup{}, Mode: ModeDebug, LoadDelay: -1, Dispatcher: q})
		if err != nil {
			t.Fatalf("new view model: %v", err)
		}
		loadModel(t, vm, q)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			vm.HandleEvent(UpdateStatus{Status: "Busy"})
		}()
		go func() {
			defer wg.Done()
			vm.HandleEvent(ViewDidLoad{})
		}()
		wg.Wait()

		if kind := vm.State().Kind(); kind != StateLoading {
			vm.Close()
			t.Fatalf("iteration %d: state = %v after a reload, want loading", i, kind)
		}
		vm.Close()
	}
}

func TestRowQueries(t *testing.T) {
	vm, q, _ := newTestModel(t, &stubLookup{})

	if got := vm.NumberOfSections(); got != 2 {
		t.Fatalf("sections = %d, want 2", got)
	}
	if got := vm.NumberOfRows(1); got != 0 {
		t.Fatalf("rows in posts section before load = %d, want 0", got)
	}

	loadModel(t, vm, q)

	cases := map[int]int{0: 1, 1: 4, 2: 0, 3: 0, -1: 0}
	for section, want := range cases {
		if got := vm.NumberOfRows(section); got != want {
			t.Errorf("rows(%d) = %d, want %d", section, got, want)
		}
	}
}

func TestPostLookup(t *testing.T) {
	vm, q, _ := newTestModel(t, &stubLookup{}, func(c *Config) { c.Login = "alice" })
	loadModel(t, vm, q)

	post, ok := vm.Post(IndexPath{Section: 1, Row: 0})
	if !ok {
		t.Fatal("expected first post")
	}
	if post.Author != "Travaler_55672" || post.Likes != 367 || post.Views != 1589 {
		t.Fatalf("unexpected first post %#v", post)
	}

	for _, path := range []IndexPath{
		{Section: 1, Row: 4},
		{Section: 1, Row: 10},
		{Section: 1, Row: -1},
		{Section: 0, Row: 0},
		{Section: 2, Row: 0},
		{Section: -1, Row: 0},
	} {
		if _, ok := vm.Post(path); ok {
			t.Errorf("Post(%+v) returned a post", path)
		}
	}
}

func TestPhotosCellTappedDoesNotChangeState(t *testing.T) {
	called := 0
	vm, _, rec := newTestModel(t, &stubLookup{}, func(c *Config) {
		c.OnPhotosRequested = func() { called++ }
	})
	vm.HandleEvent(PhotosCellTapped{})
	if len(rec.states) != 0 || len(rec.anims) != 0 {
		t.Fatalf("unexpected emissions: %#v %#v", rec.states, rec.anims)
	}
	if called != 1 {
		t.Fatalf("photos callback called %d times", called)
	}
}

func TestSecondLoadSupersedesFirst(t *testing.T) {
	lookup := &stubLookup{}
	vm, q, rec := newTestModel(t, lookup)

	vm.HandleEvent(ViewDidLoad{})
	vm.HandleEvent(ViewDidLoad{})
	runOne(t, q)
	runOne(t, q)

	loaded := 0
	for _, s := range rec.states {
		if s.Kind() == StateLoaded {
			loaded++
		}
	}
	if loaded != 1 {
		t.Fatalf("expected one Loaded for the surviving load, got %d", loaded)
	}
}

func TestCloseDropsPendingLoad(t *testing.T) {
	release := make(chan struct{})
	lookup := LookupFunc(func(ctx context.Context, login string) (User, error) {
		<-release
		return User{Login: login}, nil
	})
	vm, q, rec := newTestModel(t, lookup)

	vm.HandleEvent(ViewDidLoad{})
	vm.Close()
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := q.RunOne(ctx); err == nil {
		t.Fatal("expected no result to be dispatched after Close")
	}
	for _, s := range rec.states {
		if s.Kind() == StateLoaded {
			t.Fatal("Loaded emitted after Close")
		}
	}
	vm.HandleEvent(ViewDidLoad{})
	if vm.State().Kind() != StateLoading {
		t.Fatalf("closed view model changed state to %v", vm.State().Kind())
	}
}

func TestLoadDelayHoldsLoaded(t *testing.T) {
	vm, q, _ := newTestModel(t, &stubLookup{}, func(c *Config) { c.LoadDelay = 50 * time.Millisecond })
	start := time.Now()
	loadModel(t, vm, q)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("loaded after %v, expected the configured delay", elapsed)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	vm, q, _ := newTestModel(t, &stubLookup{})
	var got []ViewState
	unsubscribe := vm.OnStateChanged(func(s ViewState) { got = append(got, s) })
	unsubscribe()
	loadModel(t, vm, q)
	if len(got) != 0 {
		t.Fatalf("unsubscribed listener received %d states", len(got))
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeDebug, "DEBUG": ModeDebug, " release ": ModeRelease} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMode("staging"); err == nil || !strings.Contains(err.Error(), "staging") {
		t.Fatalf("expected error naming the bad mode, got %v", err)
	}
}
