package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// Repository actions
type OpenAction struct {
	Index int // -1 for current
}

func (a OpenAction) Type() string { return "open" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type DismissAlertAction struct{}

func (a DismissAlertAction) Type() string { return "dismiss_alert" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
