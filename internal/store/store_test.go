package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposearch/internal/identified"
	"reposearch/internal/store/storetest"
)

type counter struct {
	Value   int
	Log     []string
	Results []string
}

type increment struct{}

func (increment) Type() string { return "increment" }

type incrementTwice struct{}

func (incrementTwice) Type() string { return "increment_twice" }

type note struct{ Text string }

func (note) Type() string { return "note" }

type typed struct{ Text string }

func (typed) Type() string { return "typed" }

type committed struct{ Text string }

func (committed) Type() string { return "committed" }

type fetch struct {
	Text    string
	Release chan struct{}
}

func (fetch) Type() string { return "fetch" }

type fetched struct{ Text string }

func (fetched) Type() string { return "fetched" }

type stop struct{}

func (stop) Type() string { return "stop" }

func reduceCounter(state *counter, action Action) Effect {
	switch action := action.(type) {
	case increment:
		state.Value++
		state.Log = append(state.Log, "increment")
	case incrementTwice:
		state.Log = append(state.Log, "twice")
		return Batch(Send(increment{}), Send(note{Text: "after"}), Send(increment{}))
	case note:
		state.Log = append(state.Log, action.Text)
	case typed:
		return Send(committed{Text: action.Text}).Debounce("debounce", 300*time.Millisecond)
	case committed:
		state.Results = append(state.Results, action.Text)
	case fetch:
		return Run(func(ctx context.Context, send Sender) {
			<-action.Release
			send(fetched{Text: action.Text})
		}).Cancellable("fetch", true)
	case fetched:
		state.Results = append(state.Results, action.Text)
	case stop:
		return Cancel("fetch", "debounce")
	}
	return None()
}

func newCounterStore(t *testing.T, opts ...Option) *Store[counter] {
	t.Helper()
	s := New(counter{}, ReducerFunc[counter](reduceCounter), opts...)
	t.Cleanup(s.Close)
	return s
}

func TestSendReducesSynchronously(t *testing.T) {
	s := newCounterStore(t)

	s.Send(increment{})
	s.Send(increment{})

	assert.Equal(t, 2, s.State().Value)
}

func TestSynchronousSendEffectsRunInOrder(t *testing.T) {
	s := newCounterStore(t)

	s.Send(incrementTwice{})

	state := s.State()
	assert.Equal(t, 2, state.Value)
	assert.Equal(t, []string{"twice", "increment", "after", "increment"}, state.Log)
}

func TestDebounceCollapsesRapidSends(t *testing.T) {
	clock := storetest.NewClock()
	s := newCounterStore(t, WithClock(clock))

	s.Send(typed{Text: "x"})
	clock.Advance(100 * time.Millisecond)
	s.Send(typed{Text: "xy"})
	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, s.State().Results)

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return len(s.State().Results) == 1 }, time.Second, time.Millisecond)

	// give a late first timer every chance to slip through
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"xy"}, s.State().Results)
}

func TestDebounceCancelledBeforeFiring(t *testing.T) {
	clock := storetest.NewClock()
	s := newCounterStore(t, WithClock(clock))

	s.Send(typed{Text: "x"})
	s.Send(stop{})
	clock.Advance(time.Second)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, s.State().Results)
	assert.Zero(t, s.InFlight("debounce"))
}

func TestCancelInFlightDropsStaleResults(t *testing.T) {
	s := newCounterStore(t)

	first := make(chan struct{})
	second := make(chan struct{})
	s.Send(fetch{Text: "first", Release: first})
	s.Send(fetch{Text: "second", Release: second})

	close(second)
	require.Eventually(t, func() bool { return len(s.State().Results) == 1 }, time.Second, time.Millisecond)

	close(first)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"second"}, s.State().Results)
}

func TestCloseCancelsRunningEffects(t *testing.T) {
	var cancelled sync.WaitGroup
	cancelled.Add(1)

	reducer := ReducerFunc[counter](func(state *counter, action Action) Effect {
		return Run(func(ctx context.Context, send Sender) {
			<-ctx.Done()
			cancelled.Done()
			send(note{Text: "too late"})
		})
	})
	s := New(counter{}, reducer)
	s.Send(increment{})
	s.Close()

	cancelled.Wait()
	assert.Empty(t, s.State().Log)

	s.Send(increment{})
	assert.Empty(t, s.State().Log)
}

func TestSubscribeReceivesLatestState(t *testing.T) {
	s := newCounterStore(t)
	updates, unsubscribe := s.Subscribe()

	s.Send(increment{})
	s.Send(increment{})
	s.Send(increment{})

	got := <-updates
	assert.Equal(t, 3, got.Value)

	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestCloseClosesSubscriptions(t *testing.T) {
	s := New(counter{}, ReducerFunc[counter](reduceCounter))
	updates, _ := s.Subscribe()
	s.Close()

	_, open := <-updates
	assert.False(t, open)

	late, _ := s.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestObserverSeesEveryAction(t *testing.T) {
	var seen []string
	s := newCounterStore(t, WithObserver(func(a Action) { seen = append(seen, a.Type()) }))

	s.Send(incrementTwice{})

	assert.Equal(t, []string{"increment_twice", "increment", "note", "increment"}, seen)
}

func TestMapWrapsRunAndSendActions(t *testing.T) {
	effect := Batch(
		Send(note{Text: "sync"}),
		Run(func(_ context.Context, send Sender) { send(note{Text: "async"}) }),
	).Map(func(a Action) Action {
		n := a.(note)
		return note{Text: "mapped " + n.Text}
	})

	wrapper := ReducerFunc[counter](func(state *counter, action Action) Effect {
		if _, ok := action.(increment); ok {
			return effect
		}
		return reduceCounter(state, action)
	})
	s := New(counter{}, wrapper)
	t.Cleanup(s.Close)

	s.Send(increment{})
	require.Eventually(t, func() bool { return len(s.State().Log) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"mapped sync", "mapped async"}, s.State().Log)
}

type element struct {
	Key   int
	Count int
}

func (e element) ID() int { return e.Key }

type list struct {
	Items identified.Array[int, element]
	Seen  []string
}

type elementAction struct {
	Key    int
	Action Action
}

func (elementAction) Type() string { return "element" }

func TestForEachRoutesByID(t *testing.T) {
	child := ReducerFunc[element](func(state *element, action Action) Effect {
		switch action.(type) {
		case increment:
			state.Count++
			return Send(note{Text: "bumped"})
		}
		return None()
	})
	parent := ReducerFunc[list](func(state *list, action Action) Effect {
		if a, ok := action.(elementAction); ok {
			if n, ok := a.Action.(note); ok {
				state.Seen = append(state.Seen, n.Text)
			}
		}
		return None()
	})
	reducer := Combine[list](
		ForEach(
			func(s *list) *identified.Array[int, element] { return &s.Items },
			func(a Action) (int, Action, bool) {
				ea, ok := a.(elementAction)
				return ea.Key, ea.Action, ok
			},
			func(k int, a Action) Action { return elementAction{Key: k, Action: a} },
			Reducer[element](child),
		),
		parent,
	)

	s := New(list{Items: identified.New[int](element{Key: 1}, element{Key: 2})}, reducer)
	t.Cleanup(s.Close)

	s.Send(elementAction{Key: 2, Action: increment{}})
	s.Send(elementAction{Key: 99, Action: increment{}})

	state := s.State()
	one, _ := state.Items.Get(1)
	two, _ := state.Items.Get(2)
	assert.Equal(t, 0, one.Count)
	assert.Equal(t, 1, two.Count)
	assert.Equal(t, []string{"bumped"}, state.Seen)
}
