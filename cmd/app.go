package cmd

import (
	"fmt"
	"log"

	"reposearch/internal/config"
	"reposearch/internal/eventbus"
	"reposearch/internal/features/detail"
	"reposearch/internal/features/repolist"
	"reposearch/internal/github"
	"reposearch/internal/store"
	"reposearch/internal/ui"
)

// app owns everything the TUI needs and tears it down in order
type app struct {
	bus   eventbus.EventBus
	store *store.Store[repolist.State]
	model *ui.Model
	unsub []func()
}

func newApp(cfg config.Config, configPath string) (*app, error) {
	client, err := github.NewClient(cfg.APIURL,
		github.WithToken(cfg.Token),
		github.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	bus := eventbus.New()
	a := &app{bus: bus}
	a.unsub = subscribeLogging(bus)

	pager := ui.NewPager()
	deps := repolist.Dependencies{
		Search:               github.Observe(client, bus),
		DefaultQuery:         cfg.DefaultQuery,
		DebounceDelay:        cfg.Debounce,
		PresentDetailModally: cfg.PresentDetailModally,
		Detail:               detail.Dependencies{Pager: pager},
	}
	a.store = store.New(repolist.State{}, repolist.NewReducer(deps), store.WithObserver(func(action store.Action) {
		bus.Publish(eventbus.ActionDispatchedEvent{Action: action.Type(), Detail: fmt.Sprintf("%+v", action)})
	}))
	a.model = ui.NewModel(a.store, pager)

	bus.Publish(eventbus.ConfigLoadedEvent{Source: configPath, APIURL: cfg.APIURL})
	return a, nil
}

// Close stops running effects before the bus so their last events are logged
func (a *app) Close() {
	a.model.Close()
	a.store.Close()
	a.bus.Close()
	for _, u := range a.unsub {
		u()
	}
}

// subscribeLogging writes every dispatched action and search event to the log
func subscribeLogging(bus eventbus.EventBus) []func() {
	return []func(){
		bus.Subscribe(eventbus.EventActionDispatched, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ActionDispatchedEvent); ok {
				log.Printf("action %s %s", ev.Action, ev.Detail)
			}
		}),
		bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchRequestedEvent); ok {
				log.Printf("search %q requested", ev.Query)
			}
		}),
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchCompletedEvent); ok {
				log.Printf("search %q returned %d repositories in %s", ev.Query, ev.Count, ev.Duration)
			}
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchFailedEvent); ok {
				log.Printf("search %q failed: %v", ev.Query, ev.Err)
			}
		}),
		bus.Subscribe(eventbus.EventSearchCanceled, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchCanceledEvent); ok {
				log.Printf("search %q superseded", ev.Query)
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
				source := ev.Source
				if source == "" {
					source = "defaults"
				}
				log.Printf("config loaded from %s (api %s)", source, ev.APIURL)
			}
		}),
	}
}
