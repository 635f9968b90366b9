package repolist

import (
	"context"
	"errors"
	"log"
	"time"

	"reposearch/internal/domain"
	"reposearch/internal/features/detail"
	"reposearch/internal/features/row"
	"reposearch/internal/identified"
	"reposearch/internal/navigation"
	"reposearch/internal/store"
)

const (
	// DefaultQuery is searched when the screen appears
	DefaultQuery = "composable"
	// DefaultDebounce is how long the query must be stable before it is searched
	DefaultDebounce = 300 * time.Millisecond
)

// Searcher runs a repository search
type Searcher interface {
	SearchRepositories(ctx context.Context, query string) ([]domain.Repository, error)
}

// Dependencies are passed explicitly into the reducer
type Dependencies struct {
	Search        Searcher
	DefaultQuery  string
	DebounceDelay time.Duration
	// PresentDetailModally shows a selected row in the modal slot instead of
	// pushing it onto the stack
	PresentDetailModally bool
	Detail               detail.Dependencies
}

type cancelID int

const (
	searchID cancelID = iota
	debounceID
)

type feature struct {
	deps Dependencies
}

// NewReducer returns the list reducer with rows, detail stack and modal slot composed in
func NewReducer(deps Dependencies) store.Reducer[State] {
	if deps.DefaultQuery == "" {
		deps.DefaultQuery = DefaultQuery
	}
	if deps.DebounceDelay <= 0 {
		deps.DebounceDelay = DefaultDebounce
	}
	f := &feature{deps: deps}

	var r store.Reducer[State] = store.Combine[State](
		store.ForEach(
			func(s *State) *identified.Array[int64, row.State] { return &s.Rows },
			func(a store.Action) (int64, store.Action, bool) {
				ra, ok := a.(RowAction)
				return ra.ID, ra.Action, ok
			},
			func(id int64, a store.Action) store.Action { return RowAction{ID: id, Action: a} },
			row.Reducer(),
		),
		store.ReducerFunc[State](f.reduce),
	)
	r = navigation.ForEachStack(r,
		func(s *State) *navigation.Stack[detail.State] { return &s.Path },
		func(a store.Action) (navigation.StackAction, bool) {
			pa, ok := a.(PathAction)
			return pa.Action, ok && pa.Action != nil
		},
		func(sa navigation.StackAction) store.Action { return PathAction{Action: sa} },
		detail.Reducer(deps.Detail),
	)
	r = navigation.IfLet(r,
		func(s *State) *navigation.Presentation[Destination] { return &s.Destination },
		func(a store.Action) (navigation.PresentationAction, bool) {
			da, ok := a.(DestinationAction)
			return da.Action, ok && da.Action != nil
		},
		func(pa navigation.PresentationAction) store.Action { return DestinationAction{Action: pa} },
		destinationReducer(deps.Detail),
	)
	return r
}

func (f *feature) reduce(state *State, action store.Action) store.Effect {
	switch action := action.(type) {
	case Appeared:
		state.IsLoading = true
		return f.search(f.deps.DefaultQuery)

	case Disappeared:
		state.IsLoading = false
		return store.Cancel(searchID, debounceID)

	case QueryChanged:
		state.Query = action.Text
		return store.Send(QueryCommitted{}).Debounce(debounceID, f.deps.DebounceDelay)

	case QueryCommitted:
		// a commit supersedes any edit still waiting out the debounce
		if state.Query == "" {
			return store.Cancel(debounceID)
		}
		state.IsLoading = true
		return store.Batch(store.Cancel(debounceID), f.search(state.Query))

	case Refreshed:
		query := state.Query
		if query == "" {
			query = f.deps.DefaultQuery
		}
		state.IsLoading = true
		return store.Batch(store.Cancel(debounceID), f.search(query))

	case SearchSucceeded:
		state.IsLoading = false
		rows := make([]row.State, len(action.Repositories))
		for i, repo := range action.Repositories {
			rows[i] = row.New(repo)
		}
		state.Rows = identified.New[int64](rows...)
		return store.None()

	case SearchFailed:
		state.IsLoading = false
		alert := NetworkErrorAlert
		state.Destination.Present(Destination{Alert: &alert})
		return store.None()

	case RowAction:
		if _, ok := action.Action.(row.Selected); !ok {
			return store.None()
		}
		r, ok := state.Rows.Get(action.ID)
		if !ok {
			return store.None()
		}
		d := detail.New(r.Repository)
		if f.deps.PresentDetailModally {
			state.Destination.Present(Destination{Detail: &d})
		} else {
			state.Path.Push(d)
		}
		return store.None()
	}
	return store.None()
}

func (f *feature) search(query string) store.Effect {
	search := f.deps.Search
	return store.Run(func(ctx context.Context, send store.Sender) {
		if search == nil {
			send(SearchFailed{Err: errors.New("no search client configured")})
			return
		}
		repos, err := search.SearchRepositories(ctx, query)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("repolist: search %q failed: %v", query, err)
			}
			send(SearchFailed{Err: err})
			return
		}
		send(SearchSucceeded{Repositories: repos})
	}).Cancellable(searchID, true)
}

func destinationReducer(deps detail.Dependencies) store.Reducer[Destination] {
	child := detail.Reducer(deps)
	return store.ReducerFunc[Destination](func(state *Destination, action store.Action) store.Effect {
		da, ok := action.(DetailAction)
		if !ok || state.Detail == nil {
			return store.None()
		}
		d := *state.Detail
		effect := child.Reduce(&d, da.Action)
		state.Detail = &d
		return effect.Map(func(a store.Action) store.Action { return DetailAction{Action: a} })
	})
}
