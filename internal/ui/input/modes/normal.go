package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reposearch/internal/ui/input/types"
)

// ListMode handles keys while the result list has focus
type ListMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewListMode() *ListMode {
	return &ListMode{now: time.Now}
}

func (m *ListMode) Name() string {
	return "list"
}

func (m *ListMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ListMode) Exit(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *ListMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true

	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "pgup", "ctrl+u":
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case "pgdown", "ctrl+d":
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case "home":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "g":
		if m.lastKeyWasG && m.now().Sub(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = m.now()
		return nil, true

	case "enter", "l", "right":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenAction{Index: -1}}, true

	case "/", "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "r", "ctrl+r":
		return []types.Action{types.RefreshAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
