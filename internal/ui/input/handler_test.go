package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companypicker/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New()
	ctx := &ModelContext{CursorIndex: 0, Selected: 2}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, actions)

	actions, _ = h.HandleKey(runes("z"), ctx)
	assert.Empty(t, actions)
}

func TestOpenPickerResetsQuery(t *testing.T) {
	h := New()
	ctx := &ModelContext{Selected: 0}

	actions, cmd := h.HandleKey(runes("a"), ctx)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModePicker, h.CurrentMode())
	assert.Contains(t, actions, types.UpdateTextAction{Text: ""})
	require.NotNil(t, h.TextInput())
	assert.True(t, h.TextInput().Focused())
}

func TestEnterOnAddControlOpensPicker(t *testing.T) {
	h := New()

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &ModelContext{CursorIndex: 0, Selected: 1})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &ModelContext{CursorIndex: 1, Selected: 1})
	assert.Equal(t, types.ModePicker, h.CurrentMode())
}

func TestDisabledAddControl(t *testing.T) {
	h := New()
	ctx := &ModelContext{CursorIndex: 20, Selected: 20, Full: true}

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Empty(t, actions)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestTypingFiltersAndEnterAdds(t *testing.T) {
	h := New()
	ctx := &ModelContext{Results: 3}
	h.HandleKey(runes("a"), ctx)

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "a"}}, actions)
	actions, _ = h.HandleKey(runes("c"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "ac"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.PickerNavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.AddCompanyAction{}}, actions)
	assert.Equal(t, types.ModePicker, h.CurrentMode())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &ModelContext{Results: 0})
	assert.Empty(t, actions)
}

func TestEscClosesPicker(t *testing.T) {
	h := New()
	ctx := &ModelContext{}
	h.HandleKey(runes("a"), ctx)
	h.HandleKey(runes("x"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, types.ModePicker, h.CurrentMode())
	assert.Equal(t, "", h.TextInput().Value())
	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestRemoveKeys(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("d"), &ModelContext{CursorIndex: 0, Selected: 2})
	assert.Equal(t, []types.Action{types.RemoveCompanyAction{Index: -1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDelete}, &ModelContext{CursorIndex: 1, Selected: 2})
	assert.Equal(t, []types.Action{types.RemoveCompanyAction{Index: -1}}, actions)

	actions, _ = h.HandleKey(runes("x"), &ModelContext{CursorIndex: 2, Selected: 2})
	assert.Empty(t, actions)
}

func TestQuit(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("q"), &ModelContext{})
	assert.Equal(t, []types.Action{types.QuitAction{Force: false}}, actions)

	h.HandleKey(runes("a"), &ModelContext{})
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, &ModelContext{})
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}

func TestReset(t *testing.T) {
	h := New()
	h.HandleKey(runes("a"), &ModelContext{})
	h.HandleKey(runes("z"), &ModelContext{})

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}
