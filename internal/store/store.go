// Package store runs reducers serially and executes the effects they return.
package store

import (
	"context"
	"log"
	"runtime/debug"
	"sync"
	"time"
)

// Clock schedules delayed effects
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns a Clock backed by the time package
func RealClock() Clock { return realClock{} }

// Option configures a Store
type Option func(*options)

type options struct {
	clock     Clock
	observers []func(Action)
}

// WithClock sets the clock used for debounced and delayed effects
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithObserver registers fn to be called with every action before it is reduced.
// fn runs while the store is locked and must not call back into the store.
func WithObserver(fn func(Action)) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

type task struct {
	cancel context.CancelFunc
	tags   []any
}

// Store owns a state value and applies actions to it one at a time
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]
	opts    options

	ctx    context.Context
	cancel context.CancelFunc
	tasks  map[any]map[*task]struct{}
	wg     sync.WaitGroup
	closed bool

	subMu  sync.Mutex
	subs   map[int]chan S
	nextID int
}

// New creates a store holding initial and driven by reducer
func New[S any](initial S, reducer Reducer[S], opts ...Option) *Store[S] {
	o := options{clock: RealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		opts:    o,
		ctx:     ctx,
		cancel:  cancel,
		tasks:   make(map[any]map[*task]struct{}),
		subs:    make(map[int]chan S),
	}
}

// State returns a snapshot of the current state
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Send reduces action and any actions its effects send synchronously.
// Sends after Close are ignored.
func (s *Store[S]) Send(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.process(action)
	s.publish(s.state)
}

// Subscribe returns a channel that receives the latest state after every Send.
// Slow readers only see the most recent snapshot. The channel is closed by
// the returned function or by Close.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan S, 1)
	if s.subs == nil {
		close(ch)
		return ch, func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close cancels all running effects, waits for them to return and closes
// every subscription.
func (s *Store[S]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.tasks = make(map[any]map[*task]struct{})
	s.mu.Unlock()

	s.wg.Wait()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subs = nil
}

// process must be called with mu held
func (s *Store[S]) process(action Action) {
	queue := []Action{action}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		for _, observe := range s.opts.observers {
			observe(next)
		}
		effect := s.reducer.Reduce(&s.state, next)
		queue = append(queue, s.execute(effect)...)
	}
}

// execute starts effect work and returns the actions it sends synchronously.
// Must be called with mu held.
func (s *Store[S]) execute(effect Effect) []Action {
	var immediate []Action
	for _, op := range effect.ops {
		switch op.kind {
		case opCancel:
			for _, id := range op.ids {
				s.cancelLocked(id)
			}
		case opSend:
			immediate = append(immediate, op.action)
		case opRun:
			s.start(op)
		}
	}
	return immediate
}

func (s *Store[S]) start(op operation) {
	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{cancel: cancel, tags: op.ids}
	for _, id := range t.tags {
		if s.tasks[id] == nil {
			s.tasks[id] = make(map[*task]struct{})
		}
		s.tasks[id][t] = struct{}{}
	}

	// The timer is armed before the goroutine starts so that a clock
	// advanced right after Send always sees it.
	var timer <-chan time.Time
	if op.delay > 0 {
		timer = s.opts.clock.After(op.delay)
	}

	send := func(a Action) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || ctx.Err() != nil {
			return
		}
		s.process(a)
		s.publish(s.state)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finish(t)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("store: effect panic: %v\nStack: %s", r, debug.Stack())
			}
		}()

		if timer != nil {
			select {
			case <-timer:
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
		op.run(ctx, send)
	}()
}

func (s *Store[S]) finish(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.cancel()
	s.untrack(t)
}

func (s *Store[S]) cancelLocked(id any) {
	for t := range s.tasks[id] {
		t.cancel()
		s.untrack(t)
	}
}

func (s *Store[S]) untrack(t *task) {
	for _, id := range t.tags {
		set := s.tasks[id]
		delete(set, t)
		if len(set) == 0 {
			delete(s.tasks, id)
		}
	}
}

// publish must be called with mu held so snapshots go out in reduce order
func (s *Store[S]) publish(snapshot S) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot in favour of the new one
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// InFlight reports how many effects are running under id
func (s *Store[S]) InFlight(id any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks[id])
}
