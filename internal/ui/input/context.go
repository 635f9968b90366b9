package input

import "reposearch/internal/features/repolist"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  repolist.State
	Cursor int
}

// CurrentIndex returns the index of the highlighted row
func (c ModelContext) CurrentIndex() int {
	return c.Cursor
}

// TotalItems returns the number of rows in the list
func (c ModelContext) TotalItems() int {
	return c.State.Rows.Len()
}

// Query returns the search box text
func (c ModelContext) Query() string {
	return c.State.Query
}

// IsLoading reports whether a search is running
func (c ModelContext) IsLoading() bool {
	return c.State.IsLoading
}
