package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventUserChanged indicates the record for Login was written or removed.
	EventUserChanged EventType = iota

	// EventUsersInvalidated signals a change that could not be attributed to
	// a single user; callers should refresh everything they show.
	EventUsersInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventUserChanged:
		return "changed"
	case EventUsersInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
// Login is lower-cased.
type Event struct {
	Type  EventType
	Login string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.usersDir(), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure users directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range []string{p.basePath, p.usersDir()} {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	var (
		sendMu sync.Mutex
		done   bool
	)
	send := func(ev Event) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if done {
			return
		}
		select {
		case events <- ev:
		default:
			// Drop events if the consumer is not ready; the next change
			// triggers another notification.
		}
	}

	go func() {
		defer func() {
			sendMu.Lock()
			done = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventUsersInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				login := p.loginForPath(evt.Name)
				if login == "" {
					throttle.Enqueue(Event{Type: EventUsersInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventUserChanged, Login: login}, send)
			}
		}
	}()

	return events, nil
}

// loginForPath derives the login from a diskv record path.
func (p *persistence) loginForPath(path string) string {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(p.usersDir()) {
		return ""
	}
	return loginFromFileName(filepath.Base(path))
}

// eventThrottle coalesces rapid change notifications so subscribers react
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Login] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, logins := range pending {
		if len(logins) == 0 {
			send(Event{Type: eventType})
			continue
		}
		for login := range logins {
			send(Event{Type: eventType, Login: login})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
