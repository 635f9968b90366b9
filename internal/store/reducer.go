package store

import "reposearch/internal/identified"

// Reducer mutates state in response to an action and returns follow-up work
type Reducer[S any] interface {
	Reduce(state *S, action Action) Effect
}

// ReducerFunc adapts a function to the Reducer interface
type ReducerFunc[S any] func(state *S, action Action) Effect

// Reduce calls f(state, action)
func (f ReducerFunc[S]) Reduce(state *S, action Action) Effect {
	return f(state, action)
}

// Combine runs reducers in order against the same state and batches their effects
func Combine[S any](reducers ...Reducer[S]) Reducer[S] {
	return ReducerFunc[S](func(state *S, action Action) Effect {
		effects := make([]Effect, 0, len(reducers))
		for _, r := range reducers {
			effects = append(effects, r.Reduce(state, action))
		}
		return Batch(effects...)
	})
}

// ForEach routes actions addressed to one element of an identified collection
// to the element reducer. toElement extracts the element ID and child action
// from a parent action; fromElement wraps a child action back up. Actions for
// IDs that are no longer in the collection are ignored.
func ForEach[S any, K comparable, C identified.Identifiable[K]](
	elements func(*S) *identified.Array[K, C],
	toElement func(Action) (K, Action, bool),
	fromElement func(K, Action) Action,
	element Reducer[C],
) Reducer[S] {
	return ReducerFunc[S](func(state *S, action Action) Effect {
		id, childAction, ok := toElement(action)
		if !ok {
			return None()
		}
		arr := elements(state)
		child, ok := arr.Get(id)
		if !ok {
			return None()
		}
		effect := element.Reduce(&child, childAction)
		arr.Set(child)
		return effect.Map(func(a Action) Action { return fromElement(id, a) })
	})
}
