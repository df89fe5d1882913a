package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"companypicker/internal/domain"
)

func baseState() ViewState {
	return ViewState{
		Width:       80,
		Height:      40,
		MaxSelected: domain.MaxSelected,
		AddEnabled:  true,
		SelectedIDs: map[int64]bool{},
	}
}

func TestRenderEmptySelection(t *testing.T) {
	out := NewRenderer(4, 2).Render(baseState())

	assert.Contains(t, out, "Company Picker")
	assert.Contains(t, out, "0/20 selected")
	assert.Contains(t, out, "No companies selected")
	assert.Contains(t, out, "+ Add company")
	assert.NotContains(t, out, "limit reached")
}

func TestRenderLoading(t *testing.T) {
	state := baseState()
	state.Loading = true
	state.Spinner = "⠋"

	out := NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, "⠋ Loading companies…")
	assert.NotContains(t, out, "No companies selected")
}

func TestRenderRowsWithFallbackLogo(t *testing.T) {
	state := baseState()
	state.Rows = []CompanyRow{
		{ID: 1, Name: "acme", LogoStatus: LogoFailed},
		{ID: 2, Name: "Globex", LogoStatus: LogoPending},
	}
	state.Sync = SyncSaved

	out := NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "Globex")
	assert.Contains(t, out, "A")
	assert.Equal(t, 2, strings.Count(out, "✕"))
	assert.Contains(t, out, "2/20 selected")
	assert.Contains(t, out, "saved")
	assert.NotContains(t, out, "No companies selected")
}

func TestRenderIsPure(t *testing.T) {
	state := baseState()
	state.Rows = []CompanyRow{{ID: 1, Name: "Acme", LogoStatus: LogoFailed}}

	r := NewRenderer(4, 2)
	assert.Equal(t, r.Render(state), r.Render(state))
}

func TestRenderFullSelectionDisablesAdd(t *testing.T) {
	state := baseState()
	for i := 1; i <= domain.MaxSelected; i++ {
		state.Rows = append(state.Rows, CompanyRow{ID: int64(i), Name: fmt.Sprintf("Company %d", i), LogoStatus: LogoFailed})
	}
	state.AddEnabled = false
	state.Height = 200

	out := NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, "20/20 selected")
	assert.Contains(t, out, "limit reached")
	assert.Contains(t, out, "Company 20")
}

func TestRenderScrollsToCursor(t *testing.T) {
	state := baseState()
	for i := 1; i <= domain.MaxSelected; i++ {
		state.Rows = append(state.Rows, CompanyRow{ID: int64(i), Name: fmt.Sprintf("Row%02d", i), LogoStatus: LogoFailed})
	}
	state.Height = 20
	state.Cursor = 19

	out := NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, "Row20")
	assert.NotContains(t, out, "Row01")
	assert.Contains(t, out, "more")
}

func TestRenderPicker(t *testing.T) {
	state := baseState()
	state.PickerOpen = true
	state.PickerInput = "acm"
	state.PickerQuery = "acm"
	state.PickerResults = []domain.Company{{ID: 1, Name: "Acme"}, {ID: 4, Name: "Acme Rockets"}}
	state.SelectedIDs = map[int64]bool{4: true}

	out := NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, "Search: acm")
	assert.Contains(t, out, "Acme Rockets")
	assert.Contains(t, out, "✓")

	state.PickerResults = nil
	out = NewRenderer(4, 2).Render(state)
	assert.Contains(t, out, `No companies match "acm"`)
}

func TestRenderFallback(t *testing.T) {
	out := RenderFallback("acme", 4, 2)
	assert.Contains(t, out, "A")
	assert.Equal(t, 2, len(strings.Split(out, "\n")))

	assert.Contains(t, RenderFallback("", 4, 2), "?")
}

func TestContrastColor(t *testing.T) {
	assert.Equal(t, "#000000", ContrastColor("#ffffff"))
	assert.Equal(t, "#ffffff", ContrastColor("#000000"))
	assert.Equal(t, "#ffffff", ContrastColor("#5a0d1f"))
	assert.Equal(t, "#ffffff", ContrastColor("bogus"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Acme", truncate("Acme", 10))
	assert.Equal(t, "Acme Ro…", truncate("Acme Rockets", 8))
	assert.Equal(t, "…", truncate("Acme", 1))
}

func TestVisibleRange(t *testing.T) {
	start, end := visibleRange(5, 0, 10)
	assert.Equal(t, []int{0, 5}, []int{start, end})

	start, end = visibleRange(20, 19, 8)
	assert.Equal(t, []int{12, 20}, []int{start, end})

	start, end = visibleRange(20, 10, 8)
	assert.Equal(t, []int{6, 14}, []int{start, end})
}
