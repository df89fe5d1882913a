package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"companypicker/internal/ui/input/types"
)

// PickerMode is active while the company menu is open. Typed text filters
// the catalog; Enter adds the highlighted company.
type PickerMode struct {
	TextInputMode
}

func NewPickerMode(ti *textinput.Model) *PickerMode {
	return &PickerMode{
		TextInputMode: NewTextInputMode(types.ModePicker, "picker", "Search: ", ti),
	}
}

func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		return []types.Action{types.PickerNavigateAction{Direction: "up"}}, true
	case tea.KeyDown, tea.KeyCtrlN:
		return []types.Action{types.PickerNavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.PickerNavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.PickerNavigateAction{Direction: "pagedown"}}, true
	case tea.KeyTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case tea.KeyEnter:
		if ctx.PickerResults() == 0 {
			return nil, true
		}
		return []types.Action{types.AddCompanyAction{}}, true
	}

	return m.TextInputMode.HandleKey(msg, ctx)
}
