// Package navigation composes child reducers into a modal slot and a push stack.
package navigation

import "reposearch/internal/store"

// Presentation holds at most one presented child state.
type Presentation[S any] struct {
	value *S
	gen   uint64
}

// Present shows v, replacing anything already presented.
func (p *Presentation[S]) Present(v S) {
	p.gen++
	p.value = &v
}

// Dismiss clears the slot.
func (p *Presentation[S]) Dismiss() {
	p.value = nil
}

// Get returns the presented state.
func (p Presentation[S]) Get() (S, bool) {
	if p.value == nil {
		var zero S
		return zero, false
	}
	return *p.value, true
}

// IsPresented reports whether anything is presented.
func (p Presentation[S]) IsPresented() bool { return p.value != nil }

// update replaces the presented value without starting a new presentation.
func (p *Presentation[S]) update(v S) {
	p.value = &v
}

// token identifies the current presentation. gen changes on every Present.
func (p Presentation[S]) token() (uint64, bool) {
	return p.gen, p.value != nil
}

// PresentationAction is routed to a presented child.
type PresentationAction interface {
	store.Action
	presentationAction()
}

// Dismiss asks the parent to clear the slot.
type Dismiss struct{}

func (Dismiss) Type() string        { return "presentation.dismiss" }
func (Dismiss) presentationAction() {}

// Presented carries an action for the presented child.
type Presented struct {
	Action store.Action
}

func (Presented) Type() string        { return "presentation.presented" }
func (Presented) presentationAction() {}

type presentationEffects struct {
	scope *int
	gen   uint64
}

// IfLet runs child against the presented value of a Presentation owned by the
// parent. Presented actions reach child only while something is presented;
// otherwise they are ignored. Dismiss clears the slot. Effects started by the
// child are cancelled once the presentation they belong to goes away, either
// by dismissal or by being replaced.
func IfLet[P, C any](
	parent store.Reducer[P],
	slot func(*P) *Presentation[C],
	toChild func(store.Action) (PresentationAction, bool),
	fromChild func(PresentationAction) store.Action,
	child store.Reducer[C],
) store.Reducer[P] {
	scope := new(int)
	return store.ReducerFunc[P](func(state *P, action store.Action) store.Effect {
		p := slot(state)
		beforeGen, wasPresented := p.token()

		var childEffect store.Effect
		if pa, ok := toChild(action); ok {
			switch pa := pa.(type) {
			case Presented:
				if value, ok := p.Get(); ok {
					effect := child.Reduce(&value, pa.Action)
					p.update(value)
					childEffect = effect.
						Map(func(a store.Action) store.Action { return fromChild(Presented{Action: a}) }).
						Cancellable(presentationEffects{scope: scope, gen: beforeGen}, false)
				}
			case Dismiss:
				p.Dismiss()
			}
		}

		parentEffect := parent.Reduce(state, action)

		p = slot(state)
		afterGen, isPresented := p.token()
		var cleanup store.Effect
		if wasPresented && (!isPresented || afterGen != beforeGen) {
			cleanup = store.Cancel(presentationEffects{scope: scope, gen: beforeGen})
		}
		return store.Batch(childEffect, parentEffect, cleanup)
	})
}
