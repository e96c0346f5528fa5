package profile

import "context"

// Dispatcher runs fn on the goroutine that owns the view model. Results of
// background work go through it before touching state.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// Queue is a Dispatcher for owners without an event loop of their own. The
// owner drains it with Run or RunOne.
type Queue struct {
	ch chan func()
}

// NewQueue makes a queue buffering up to size pending callbacks.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 16
	}
	return &Queue{ch: make(chan func(), size)}
}

// Dispatch enqueues fn. It blocks while the buffer is full.
func (q *Queue) Dispatch(fn func()) {
	q.ch <- fn
}

// RunOne waits for a single callback and runs it.
func (q *Queue) RunOne(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case fn := <-q.ch:
		fn()
		return nil
	}
}

// Run drains the queue until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		if err := q.RunOne(ctx); err != nil {
			return err
		}
	}
}

// Pending reports how many callbacks are waiting.
func (q *Queue) Pending() int {
	return len(q.ch)
}
