package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"reposearch/internal/ui/input/types"
)

// SearchMode edits the search query. Every edit is reported as it happens.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

// Enter seeds the text box with the current query so edits continue from it
func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.SetValue(ctx.Query())
		m.textInput.CursorEnd()
	}
	return m.TextInputMode.Enter(ctx)
}
