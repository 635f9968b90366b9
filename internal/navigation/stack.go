package navigation

import (
	"slices"

	"reposearch/internal/store"
)

// ElementID identifies a pushed stack frame. IDs are never reused within a Stack.
type ElementID uint64

// Element is a stack frame.
type Element[S any] struct {
	ID    ElementID
	State S
}

// Stack is an ordered push-navigation history.
//
// Like identified.Array, mutations never write into storage shared with
// earlier copies.
type Stack[S any] struct {
	elements []Element[S]
	nextID   ElementID
}

// Push appends s and returns its frame ID.
func (st *Stack[S]) Push(s S) ElementID {
	st.nextID++
	id := st.nextID
	st.elements = append(slices.Clip(st.elements), Element[S]{ID: id, State: s})
	return id
}

// PopTo truncates the stack to n frames. n outside [0, Len] is ignored.
func (st *Stack[S]) PopTo(n int) bool {
	if n < 0 || n > len(st.elements) {
		return false
	}
	st.elements = slices.Clip(st.elements[:n])
	return true
}

// PopFrom removes the frame id and every frame pushed after it.
func (st *Stack[S]) PopFrom(id ElementID) bool {
	i := st.IndexOf(id)
	if i < 0 {
		return false
	}
	return st.PopTo(i)
}

// Len returns the number of frames.
func (st Stack[S]) Len() int { return len(st.elements) }

// Elements returns a copy of the frames, bottom first.
func (st Stack[S]) Elements() []Element[S] { return slices.Clone(st.elements) }

// IDs returns the frame IDs, bottom first.
func (st Stack[S]) IDs() []ElementID {
	ids := make([]ElementID, len(st.elements))
	for i, e := range st.elements {
		ids[i] = e.ID
	}
	return ids
}

// IndexOf returns the position of id, or -1.
func (st Stack[S]) IndexOf(id ElementID) int {
	for i, e := range st.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the state of frame id.
func (st Stack[S]) Get(id ElementID) (S, bool) {
	if i := st.IndexOf(id); i >= 0 {
		return st.elements[i].State, true
	}
	var zero S
	return zero, false
}

// Top returns the most recently pushed frame.
func (st Stack[S]) Top() (Element[S], bool) {
	if len(st.elements) == 0 {
		return Element[S]{}, false
	}
	return st.elements[len(st.elements)-1], true
}

func (st *Stack[S]) set(id ElementID, s S) {
	i := st.IndexOf(id)
	if i < 0 {
		return
	}
	elements := slices.Clone(st.elements)
	elements[i].State = s
	st.elements = elements
}

// StackAction is routed to a Stack owned by the parent.
type StackAction interface {
	store.Action
	stackAction()
}

// ElementAction carries an action for frame ID.
type ElementAction struct {
	ID     ElementID
	Action store.Action
}

func (ElementAction) Type() string { return "stack.element" }
func (ElementAction) stackAction() {}

// Push appends State to the stack.
type Push[S any] struct {
	State S
}

func (Push[S]) Type() string { return "stack.push" }
func (Push[S]) stackAction() {}

// PopTo truncates the stack to Len frames.
type PopTo struct {
	Len int
}

func (PopTo) Type() string { return "stack.pop_to" }
func (PopTo) stackAction() {}

// PopFrom removes frame ID and everything above it.
type PopFrom struct {
	ID ElementID
}

func (PopFrom) Type() string { return "stack.pop_from" }
func (PopFrom) stackAction() {}

type stackEffects struct {
	scope *int
	id    ElementID
}

// ForEachStack runs child against individual frames of a Stack owned by the
// parent. ElementAction for a frame that is no longer on the stack is ignored.
// Push, PopTo and PopFrom are applied before the parent reduces them. Effects
// started by a frame are cancelled once that frame leaves the stack.
func ForEachStack[P, C any](
	parent store.Reducer[P],
	stack func(*P) *Stack[C],
	toChild func(store.Action) (StackAction, bool),
	fromChild func(StackAction) store.Action,
	child store.Reducer[C],
) store.Reducer[P] {
	scope := new(int)
	return store.ReducerFunc[P](func(state *P, action store.Action) store.Effect {
		st := stack(state)
		before := st.IDs()

		var childEffect store.Effect
		if sa, ok := toChild(action); ok {
			switch sa := sa.(type) {
			case ElementAction:
				if value, ok := st.Get(sa.ID); ok {
					id := sa.ID
					effect := child.Reduce(&value, sa.Action)
					st.set(id, value)
					childEffect = effect.
						Map(func(a store.Action) store.Action { return fromChild(ElementAction{ID: id, Action: a}) }).
						Cancellable(stackEffects{scope: scope, id: id}, false)
				}
			case Push[C]:
				st.Push(sa.State)
			case PopTo:
				st.PopTo(sa.Len)
			case PopFrom:
				st.PopFrom(sa.ID)
			}
		}

		parentEffect := parent.Reduce(state, action)

		st = stack(state)
		var popped []any
		for _, id := range before {
			if st.IndexOf(id) < 0 {
				popped = append(popped, stackEffects{scope: scope, id: id})
			}
		}
		return store.Batch(childEffect, parentEffect, store.Cancel(popped...))
	})
}
