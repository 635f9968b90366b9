package navigation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposearch/internal/store"
)

type screen struct {
	Name   string
	Visits int
	Echoed []string
}

type visit struct{}

func (visit) Type() string { return "visit" }

type echo struct{ Text string }

func (echo) Type() string { return "echo" }

type wait struct{ Started, Cancelled *atomic.Int32 }

func (wait) Type() string { return "wait" }

var screenReducer = store.ReducerFunc[screen](func(state *screen, action store.Action) store.Effect {
	switch action := action.(type) {
	case visit:
		state.Visits++
		return store.Send(echo{Text: state.Name})
	case echo:
		state.Echoed = append(state.Echoed, action.Text)
	case wait:
		return store.Run(func(ctx context.Context, send store.Sender) {
			action.Started.Add(1)
			<-ctx.Done()
			action.Cancelled.Add(1)
		})
	}
	return store.None()
})

type app struct {
	Modal Presentation[screen]
	Path  Stack[screen]
	Log   []string
}

type modalAction struct{ Action PresentationAction }

func (modalAction) Type() string { return "modal" }

type pathAction struct{ Action StackAction }

func (pathAction) Type() string { return "path" }

type present struct{ Name string }

func (present) Type() string { return "present" }

func newApp(t *testing.T, initial app) *store.Store[app] {
	t.Helper()
	core := store.ReducerFunc[app](func(state *app, action store.Action) store.Effect {
		switch action := action.(type) {
		case present:
			state.Modal.Present(screen{Name: action.Name})
		case pathAction:
			if e, ok := action.Action.(ElementAction); ok {
				if ec, ok := e.Action.(echo); ok {
					state.Log = append(state.Log, "path:"+ec.Text)
				}
			}
		}
		return store.None()
	})

	var r store.Reducer[app] = core
	r = ForEachStack(r,
		func(a *app) *Stack[screen] { return &a.Path },
		func(a store.Action) (StackAction, bool) {
			pa, ok := a.(pathAction)
			return pa.Action, ok
		},
		func(sa StackAction) store.Action { return pathAction{Action: sa} },
		store.Reducer[screen](screenReducer),
	)
	r = IfLet(r,
		func(a *app) *Presentation[screen] { return &a.Modal },
		func(a store.Action) (PresentationAction, bool) {
			ma, ok := a.(modalAction)
			return ma.Action, ok
		},
		func(pa PresentationAction) store.Action { return modalAction{Action: pa} },
		store.Reducer[screen](screenReducer),
	)

	s := store.New(initial, r)
	t.Cleanup(s.Close)
	return s
}

func TestPresentationPresentReplacesAndDismissClears(t *testing.T) {
	var p Presentation[string]
	assert.False(t, p.IsPresented())

	p.Present("alert")
	p.Present("detail")
	got, ok := p.Get()
	require.True(t, ok)
	assert.Equal(t, "detail", got)

	p.Dismiss()
	assert.False(t, p.IsPresented())
	_, ok = p.Get()
	assert.False(t, ok)
}

func TestStackPushAndPop(t *testing.T) {
	var st Stack[string]
	a := st.Push("a")
	b := st.Push("b")
	c := st.Push("c")
	assert.Equal(t, []ElementID{a, b, c}, st.IDs())

	assert.False(t, st.PopTo(4))
	assert.False(t, st.PopTo(-1))

	require.True(t, st.PopTo(2))
	assert.Equal(t, 2, st.Len())
	top, ok := st.Top()
	require.True(t, ok)
	assert.Equal(t, "b", top.State)

	d := st.Push("d")
	assert.NotEqual(t, c, d, "ids are never reused")

	require.True(t, st.PopFrom(b))
	assert.Equal(t, []ElementID{a}, st.IDs())
	assert.False(t, st.PopFrom(b))

	require.True(t, st.PopTo(0))
	_, ok = st.Top()
	assert.False(t, ok)
}

func TestStackCopiesAreSnapshots(t *testing.T) {
	var st Stack[string]
	st.Push("a")
	st.Push("b")
	snapshot := st

	st.PopTo(1)
	st.Push("c")

	assert.Equal(t, 2, snapshot.Len())
	top, _ := snapshot.Top()
	assert.Equal(t, "b", top.State)
}

func TestIfLetRoutesOnlyWhilePresented(t *testing.T) {
	s := newApp(t, app{})

	s.Send(modalAction{Action: Presented{Action: visit{}}})
	assert.False(t, s.State().Modal.IsPresented())

	s.Send(present{Name: "detail"})
	s.Send(modalAction{Action: Presented{Action: visit{}}})

	got, ok := s.State().Modal.Get()
	require.True(t, ok)
	assert.Equal(t, 1, got.Visits)
	assert.Equal(t, []string{"detail"}, got.Echoed)

	s.Send(modalAction{Action: Dismiss{}})
	assert.False(t, s.State().Modal.IsPresented())
}

func TestIfLetCancelsChildEffectsOnDismiss(t *testing.T) {
	s := newApp(t, app{})
	var started, cancelled atomic.Int32

	s.Send(present{Name: "detail"})
	s.Send(modalAction{Action: Presented{Action: wait{Started: &started, Cancelled: &cancelled}}})
	require.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, time.Millisecond)

	s.Send(modalAction{Action: Dismiss{}})
	require.Eventually(t, func() bool { return cancelled.Load() == 1 }, time.Second, time.Millisecond)
}

func TestIfLetCancelsChildEffectsOnReplace(t *testing.T) {
	s := newApp(t, app{})
	var started, cancelled atomic.Int32

	s.Send(present{Name: "first"})
	s.Send(modalAction{Action: Presented{Action: wait{Started: &started, Cancelled: &cancelled}}})
	require.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, time.Millisecond)

	s.Send(present{Name: "second"})
	require.Eventually(t, func() bool { return cancelled.Load() == 1 }, time.Second, time.Millisecond)

	got, _ := s.State().Modal.Get()
	assert.Equal(t, "second", got.Name)
}

func TestForEachStackRoutesByElementID(t *testing.T) {
	s := newApp(t, app{})

	s.Send(pathAction{Action: Push[screen]{State: screen{Name: "one"}}})
	s.Send(pathAction{Action: Push[screen]{State: screen{Name: "two"}}})
	ids := s.State().Path.IDs()
	require.Len(t, ids, 2)

	s.Send(pathAction{Action: ElementAction{ID: ids[0], Action: visit{}}})

	state := s.State()
	one, _ := state.Path.Get(ids[0])
	two, _ := state.Path.Get(ids[1])
	assert.Equal(t, 1, one.Visits)
	assert.Equal(t, 0, two.Visits)
	assert.Equal(t, []string{"path:one"}, state.Log)
}

func TestForEachStackIgnoresPoppedElements(t *testing.T) {
	s := newApp(t, app{})

	s.Send(pathAction{Action: Push[screen]{State: screen{Name: "one"}}})
	id := s.State().Path.IDs()[0]
	s.Send(pathAction{Action: PopTo{Len: 0}})

	s.Send(pathAction{Action: ElementAction{ID: id, Action: visit{}}})

	state := s.State()
	assert.Equal(t, 0, state.Path.Len())
	assert.Empty(t, state.Log)
}

func TestForEachStackCancelsPoppedElementEffects(t *testing.T) {
	s := newApp(t, app{})
	var started, cancelled atomic.Int32

	s.Send(pathAction{Action: Push[screen]{State: screen{Name: "one"}}})
	s.Send(pathAction{Action: Push[screen]{State: screen{Name: "two"}}})
	ids := s.State().Path.IDs()

	w := wait{Started: &started, Cancelled: &cancelled}
	s.Send(pathAction{Action: ElementAction{ID: ids[0], Action: w}})
	s.Send(pathAction{Action: ElementAction{ID: ids[1], Action: w}})
	require.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, time.Millisecond)

	s.Send(pathAction{Action: PopFrom{ID: ids[1]}})
	require.Eventually(t, func() bool { return cancelled.Load() == 1 }, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), cancelled.Load(), "frame below the popped one keeps running")
	assert.Equal(t, 1, s.State().Path.Len())
}
