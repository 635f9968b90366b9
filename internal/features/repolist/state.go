// Package repolist is the repository search screen: a debounced query box,
// the result rows, an alert/detail modal slot and a push stack of details.
package repolist

import (
	"reposearch/internal/domain"
	"reposearch/internal/features/detail"
	"reposearch/internal/features/row"
	"reposearch/internal/identified"
	"reposearch/internal/navigation"
	"reposearch/internal/store"
)

// State is owned by the list reducer. Nothing else mutates it.
type State struct {
	Rows        identified.Array[int64, row.State]
	IsLoading   bool
	Query       string
	Destination navigation.Presentation[Destination]
	Path        navigation.Stack[detail.State]
}

// Repositories returns the repositories shown in the list, in order
func (s State) Repositories() []domain.Repository {
	rows := s.Rows.Elements()
	repos := make([]domain.Repository, len(rows))
	for i, r := range rows {
		repos[i] = r.Repository
	}
	return repos
}

// Alert is a modal error notification
type Alert struct {
	Title   string
	Message string
}

// NetworkErrorAlert is presented whenever a search fails
var NetworkErrorAlert = Alert{Title: "Network Error", Message: "Failed to fetch data."}

// Destination is the modal slot content. Exactly one field is set.
type Destination struct {
	Alert  *Alert
	Detail *detail.State
}

// Appeared is sent when the screen is first shown
type Appeared struct{}

func (Appeared) Type() string { return "repolist.appeared" }

// Disappeared is sent when the screen is torn down
type Disappeared struct{}

func (Disappeared) Type() string { return "repolist.disappeared" }

// QueryChanged is sent for every edit of the search box
type QueryChanged struct {
	Text string
}

func (QueryChanged) Type() string { return "repolist.query_changed" }

// QueryCommitted fires once the query has been stable for the debounce delay
type QueryCommitted struct{}

func (QueryCommitted) Type() string { return "repolist.query_committed" }

// Refreshed re-runs the current query, or the default query when it is empty
type Refreshed struct{}

func (Refreshed) Type() string { return "repolist.refreshed" }

// SearchSucceeded carries the results of the latest search
type SearchSucceeded struct {
	Repositories []domain.Repository
}

func (SearchSucceeded) Type() string { return "repolist.search_succeeded" }

// SearchFailed reports that the latest search failed for any reason
type SearchFailed struct {
	Err error
}

func (SearchFailed) Type() string { return "repolist.search_failed" }

// RowAction addresses the row with the given repository ID
type RowAction struct {
	ID     int64
	Action store.Action
}

func (RowAction) Type() string { return "repolist.row" }

// DestinationAction addresses the modal slot
type DestinationAction struct {
	Action navigation.PresentationAction
}

func (DestinationAction) Type() string { return "repolist.destination" }

// PathAction addresses the detail stack
type PathAction struct {
	Action navigation.StackAction
}

func (PathAction) Type() string { return "repolist.path" }

// DetailAction is the destination child action for a modally presented detail
type DetailAction struct {
	Action store.Action
}

func (DetailAction) Type() string { return "repolist.destination.detail" }
