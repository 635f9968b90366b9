package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"reposearch/internal/ui/input/types"
)

// AlertMode waits for the user to acknowledge an alert
type AlertMode struct{}

func NewAlertMode() *AlertMode {
	return &AlertMode{}
}

func (m *AlertMode) Name() string {
	return "alert"
}

func (m *AlertMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *AlertMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *AlertMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc", "enter", " ", "y", "Y", "o", "q":
		return []types.Action{types.DismissAlertAction{}}, true
	}
	// Swallow everything else while the alert is up
	return nil, true
}
