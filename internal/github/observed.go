package github

import (
	"context"
	"errors"
	"time"

	"reposearch/internal/domain"
	"reposearch/internal/eventbus"
)

// ObservedSearcher publishes search lifecycle events for every call it forwards
type ObservedSearcher struct {
	next Searcher
	bus  eventbus.EventBus
	now  func() time.Time
}

// Observe wraps next so that searches are reported on bus
func Observe(next Searcher, bus eventbus.EventBus) *ObservedSearcher {
	return &ObservedSearcher{next: next, bus: bus, now: time.Now}
}

// SearchRepositories forwards to the wrapped Searcher
func (o *ObservedSearcher) SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error) {
	o.bus.Publish(eventbus.SearchRequestedEvent{Query: query})
	start := o.now()

	repos, err := o.next.SearchRepositories(ctx, query)
	switch {
	case err == nil:
		o.bus.Publish(eventbus.SearchCompletedEvent{Query: query, Count: len(repos), Duration: o.now().Sub(start)})
	case errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled:
		o.bus.Publish(eventbus.SearchCanceledEvent{Query: query})
	default:
		o.bus.Publish(eventbus.SearchFailedEvent{Query: query, Err: err})
	}
	return repos, err
}
