package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"companypicker/internal/domain"
)

// SyncStatus describes the state of the last selection write
type SyncStatus int

const (
	SyncIdle SyncStatus = iota
	SyncSaving
	SyncSaved
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Loading       bool
	Spinner       string
	LoadError     string
	Rows          []CompanyRow
	Cursor        int // index into Rows, len(Rows) is the add control
	MaxSelected   int
	AddEnabled    bool
	PickerOpen    bool
	PickerInput   string // rendered text input
	PickerQuery   string
	PickerResults []domain.Company
	PickerCursor  int
	SelectedIDs   map[int64]bool
	Sync          SyncStatus
	Help          string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	companyRender *CompanyRenderer
	pickerRender  *PickerRenderer
}

// NewRenderer creates a new renderer for logos of the given cell size
func NewRenderer(logoWidth, logoHeight int) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		companyRender: NewCompanyRenderer(styles, logoWidth, logoHeight),
		pickerRender:  NewPickerRenderer(styles),
	}
}

// Render produces the complete view. It reads nothing but state.
func (r *Renderer) Render(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	termHeight := state.Height
	if termHeight <= 0 {
		termHeight = 24
	}
	innerWidth := termWidth - 4 // main container padding

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n")

	main := r.renderMain(state, innerWidth, termHeight)
	if state.PickerOpen {
		main = desaturateANSI(main)
	}
	content.WriteString(main)

	if state.PickerOpen {
		content.WriteString("\n")
		content.WriteString(r.pickerRender.RenderPicker(state))
	}

	helpText := state.Help
	if helpText == "" {
		helpText = "Press ? for help"
	}
	helpText = r.styles.Help.Render(helpText)

	// Push help to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := termHeight - 2
	paddingNeeded := availableLines - currentLines - 1
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	return r.styles.Main.MaxHeight(termHeight).Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	title := r.styles.Title.Render("Company Picker")

	var right []string
	switch {
	case state.Loading:
		right = append(right, r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading companies…", state.Spinner)))
	case state.LoadError != "":
		right = append(right, r.styles.StatusError.Render(state.LoadError))
	default:
		right = append(right, r.styles.Counter.Render(fmt.Sprintf("%d/%d selected", len(state.Rows), state.MaxSelected)))
	}
	switch state.Sync {
	case SyncSaving:
		right = append(right, r.styles.StatusSaving.Render("saving…"))
	case SyncSaved:
		right = append(right, r.styles.StatusSuccess.Render("saved"))
	}

	rightContent := strings.Join(right, r.styles.Dim.Render(" · "))
	padding := width - lipgloss.Width(title) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	// title carries a bottom margin; pad its first line only
	lines := strings.SplitN(title, "\n", 2)
	lines[0] = lines[0] + strings.Repeat(" ", padding) + rightContent
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderMain(state ViewState, width, height int) string {
	if state.Loading && len(state.Rows) == 0 {
		return r.styles.Dim.Render("Fetching companies...")
	}

	var lines []string
	if len(state.Rows) == 0 {
		lines = append(lines, r.styles.Dim.Render("No companies selected"))
	} else {
		// header, help line and picker take the remaining space
		budget := height - 6
		if state.PickerOpen {
			budget -= pickerRows + 5
		}
		rowsFit := budget / r.companyRender.RowHeight()
		if rowsFit < 1 {
			rowsFit = 1
		}
		cursor := state.Cursor
		if cursor >= len(state.Rows) {
			cursor = len(state.Rows) - 1
		}
		start, end := visibleRange(len(state.Rows), cursor, rowsFit)
		if start > 0 {
			lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("  ↑ %d more", start)))
		}
		for i := start; i < end; i++ {
			lines = append(lines, r.companyRender.RenderCompany(state.Rows[i], i == state.Cursor, width))
		}
		if end < len(state.Rows) {
			lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("  ↓ %d more", len(state.Rows)-end)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, r.companyRender.RenderAddControl(state.AddEnabled, state.Cursor >= len(state.Rows)))
	return strings.Join(lines, "\n")
}
