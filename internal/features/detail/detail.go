// Package detail is the screen showing one selected repository.
package detail

import (
	"context"
	"fmt"
	"strings"

	"reposearch/internal/domain"
	"reposearch/internal/store"
)

// State holds a copy of the selected repository. It never refers back to the list.
type State struct {
	Repository domain.Repository
	PagerError string
}

// New returns detail state for repo
func New(repo domain.Repository) State {
	return State{Repository: repo}
}

// Pager shows long text full screen and blocks until the user closes it
type Pager interface {
	Page(ctx context.Context, title, content string) error
}

// Dependencies are the collaborators of the detail reducer
type Dependencies struct {
	Pager Pager
}

// PagerRequested opens the repository summary in the pager
type PagerRequested struct{}

func (PagerRequested) Type() string { return "detail.pager_requested" }

// PagerClosed reports how the pager exited
type PagerClosed struct {
	Err error
}

func (PagerClosed) Type() string { return "detail.pager_closed" }

// Reducer returns the detail reducer
func Reducer(deps Dependencies) store.Reducer[State] {
	return store.ReducerFunc[State](func(state *State, action store.Action) store.Effect {
		switch action := action.(type) {
		case PagerRequested:
			if deps.Pager == nil {
				return store.None()
			}
			title, content := state.Repository.FullName, Summary(state.Repository)
			return store.Run(func(ctx context.Context, send store.Sender) {
				send(PagerClosed{Err: deps.Pager.Page(ctx, title, content)})
			})
		case PagerClosed:
			state.PagerError = ""
			if action.Err != nil {
				state.PagerError = action.Err.Error()
			}
		}
		return store.None()
	})
}

// Summary renders repo as plain text
func Summary(repo domain.Repository) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", repo.FullName)
	if d := repo.DescriptionOrEmpty(); d != "" {
		fmt.Fprintf(&b, "%s\n\n", d)
	}
	fmt.Fprintf(&b, "Stars:    %d\n", repo.StargazersCount)
	if lang := repo.LanguageOrEmpty(); lang != "" {
		fmt.Fprintf(&b, "Language: %s\n", lang)
	}
	if repo.HTMLURL != "" {
		fmt.Fprintf(&b, "URL:      %s\n", repo.HTMLURL)
	}
	fmt.Fprintf(&b, "ID:       %d\n", repo.ID)
	return b.String()
}
