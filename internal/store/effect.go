package store

import (
	"context"
	"time"
)

// Action is a discrete event that drives a state transition
type Action interface {
	Type() string
}

// Sender feeds an action back into the store from a running effect
type Sender func(Action)

// Effect describes work the store performs after a reducer returns.
// The zero value does nothing.
type Effect struct {
	ops []operation
}

type opKind int

const (
	opSend opKind = iota
	opRun
	opCancel
)

type operation struct {
	kind   opKind
	action Action
	run    func(ctx context.Context, send Sender)
	ids    []any // cancel targets for opCancel, cancellation tags otherwise
	delay  time.Duration
}

// None returns an effect that does nothing
func None() Effect { return Effect{} }

// Send returns an effect that feeds action back into the store immediately,
// before any other pending action.
func Send(action Action) Effect {
	return Effect{ops: []operation{{kind: opSend, action: action}}}
}

// Run returns an effect that executes fn on its own goroutine.
// ctx is cancelled when the effect is cancelled or the store closes; actions
// sent after cancellation are dropped.
func Run(fn func(ctx context.Context, send Sender)) Effect {
	return Effect{ops: []operation{{kind: opRun, run: fn}}}
}

// Cancel returns an effect that cancels all in-flight work tagged with ids
func Cancel(ids ...any) Effect {
	if len(ids) == 0 {
		return None()
	}
	return Effect{ops: []operation{{kind: opCancel, ids: ids}}}
}

// Batch merges effects, preserving order
func Batch(effects ...Effect) Effect {
	var ops []operation
	for _, e := range effects {
		ops = append(ops, e.ops...)
	}
	return Effect{ops: ops}
}

// IsNone reports whether the effect does nothing
func (e Effect) IsNone() bool { return len(e.ops) == 0 }

// Cancellable tags the effect's work with id so it can be cancelled later.
// With cancelInFlight, work already running under id is cancelled first.
func (e Effect) Cancellable(id any, cancelInFlight bool) Effect {
	if e.IsNone() {
		if cancelInFlight {
			return Cancel(id)
		}
		return e
	}
	ops := make([]operation, 0, len(e.ops)+1)
	if cancelInFlight {
		ops = append(ops, operation{kind: opCancel, ids: []any{id}})
	}
	for _, op := range e.ops {
		if op.kind != opCancel {
			op.ids = append(append([]any(nil), op.ids...), id)
		}
		ops = append(ops, op)
	}
	return Effect{ops: ops}
}

// Debounce delays the effect by d and cancels any pending work under id.
// Only the most recent debounced effect for an id ever runs.
func (e Effect) Debounce(id any, d time.Duration) Effect {
	delayed := make([]operation, 0, len(e.ops))
	for _, op := range e.ops {
		switch op.kind {
		case opSend:
			action := op.action
			op = operation{
				kind: opRun,
				run:  func(_ context.Context, send Sender) { send(action) },
				ids:  op.ids,
			}
			fallthrough
		case opRun:
			op.delay += d
		}
		delayed = append(delayed, op)
	}
	return Effect{ops: delayed}.Cancellable(id, true)
}

// Map transforms every action the effect produces
func (e Effect) Map(fn func(Action) Action) Effect {
	if e.IsNone() {
		return e
	}
	ops := make([]operation, len(e.ops))
	for i, op := range e.ops {
		switch op.kind {
		case opSend:
			op.action = fn(op.action)
		case opRun:
			run := op.run
			op.run = func(ctx context.Context, send Sender) {
				run(ctx, func(a Action) { send(fn(a)) })
			}
		}
		ops[i] = op
	}
	return Effect{ops: ops}
}
