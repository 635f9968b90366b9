// Package row is a single search result in the repository list.
package row

import (
	"reposearch/internal/domain"
	"reposearch/internal/store"
)

// State wraps one repository. Its identity is the repository ID.
type State struct {
	Repository domain.Repository
}

// New returns the row state for repo
func New(repo domain.Repository) State {
	return State{Repository: repo}
}

// ID returns the repository ID
func (s State) ID() int64 { return s.Repository.ID }

// Tapped is sent when the user activates the row
type Tapped struct{}

func (Tapped) Type() string { return "row.tapped" }

// Selected is the delegate action a row sends to its parent
type Selected struct {
	Repository domain.Repository
}

func (Selected) Type() string { return "row.delegate.selected" }

// Reducer returns the row reducer. Rows never change their own state.
func Reducer() store.Reducer[State] {
	return store.ReducerFunc[State](func(state *State, action store.Action) store.Effect {
		switch action.(type) {
		case Tapped:
			return store.Send(Selected{Repository: state.Repository})
		}
		return store.None()
	})
}
