package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"companypicker/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.OnAddControl() {
			return m.openPicker(ctx)
		}
		return nil, false

	case tea.KeyTab:
		return m.openPicker(ctx)

	case tea.KeyDelete, tea.KeyBackspace:
		return m.remove(ctx)
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "a", "+":
		return m.openPicker(ctx)

	case "d", "x":
		return m.remove(ctx)

	case "?":
		return []types.Action{types.ShowHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

func (m *NormalMode) openPicker(ctx types.Context) ([]types.Action, bool) {
	// the add control is disabled while the selection is full
	if !ctx.CanAdd() {
		return nil, true
	}
	return []types.Action{types.ChangeModeAction{Mode: types.ModePicker}}, true
}

func (m *NormalMode) remove(ctx types.Context) ([]types.Action, bool) {
	if ctx.OnAddControl() || ctx.SelectedCount() == 0 {
		return nil, true
	}
	return []types.Action{types.RemoveCompanyAction{Index: -1}}, true
}
