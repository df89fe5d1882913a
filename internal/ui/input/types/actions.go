package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// PickerNavigateAction moves the highlighted row in the picker
type PickerNavigateAction struct {
	Direction string
}

func (a PickerNavigateAction) Type() string { return "picker_navigate" }

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

// Selection actions
type AddCompanyAction struct{}

func (a AddCompanyAction) Type() string { return "add_company" }

type RemoveCompanyAction struct {
	Index int // row in the main panel, -1 for the cursor row
}

func (a RemoveCompanyAction) Type() string { return "remove_company" }

// Other actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
