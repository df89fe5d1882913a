package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"companypicker/internal/domain"
)

// pickerRows is the number of results visible at once
const pickerRows = 8

// PickerRenderer handles the company menu
type PickerRenderer struct {
	styles *Styles
}

// NewPickerRenderer creates a new picker renderer
func NewPickerRenderer(styles *Styles) *PickerRenderer {
	return &PickerRenderer{styles: styles}
}

// RenderPicker renders the search field and the matching companies. Entries
// already selected carry a check mark.
func (p *PickerRenderer) RenderPicker(state ViewState) string {
	var b strings.Builder

	b.WriteString(p.styles.PickerPrompt.Render("Search: "))
	b.WriteString(state.PickerInput)
	b.WriteString("\n")

	width := state.Width - 12
	if width < 20 {
		width = 20
	}
	if width > 48 {
		width = 48
	}

	results := state.PickerResults
	if len(results) == 0 {
		if state.PickerQuery == "" {
			b.WriteString(p.styles.Dim.Render("No companies available"))
		} else {
			b.WriteString(p.styles.Dim.Render(fmt.Sprintf("No companies match %q", state.PickerQuery)))
		}
		return p.styles.PickerBox.Render(b.String())
	}

	start, end := visibleRange(len(results), state.PickerCursor, pickerRows)
	if start > 0 {
		b.WriteString(p.styles.Dim.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(p.renderResult(results[i], i == state.PickerCursor, state.SelectedIDs[results[i].ID], state.PickerQuery, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(results) {
		b.WriteString("\n")
		b.WriteString(p.styles.Dim.Render(fmt.Sprintf("↓ %d more", len(results)-end)))
	}

	return p.styles.PickerBox.Render(b.String())
}

func (p *PickerRenderer) renderResult(c domain.Company, isCursor, isSelected bool, query string, width int) string {
	marker := "  "
	if isCursor {
		marker = p.styles.Cursor.Render("› ")
	}

	check := " "
	if isSelected {
		check = p.styles.Check.Render("✓")
	}

	normal := lipgloss.NewStyle()
	if isCursor {
		normal = normal.Inherit(p.styles.HighlightBg)
	}
	name := truncate(c.Name, width-4)
	label := highlightMatch(name, query, normal.Inherit(p.styles.Highlight), normal)

	pad := width - 4 - lipgloss.Width(name)
	if pad < 0 {
		pad = 0
	}
	return marker + label + normal.Render(strings.Repeat(" ", pad)) + " " + check
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansiRE.ReplaceAllString(line, "")
		lines[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
	}
	return strings.Join(lines, "\n")
}

// visibleRange returns the window of size rows that keeps cursor in view
func visibleRange(total, cursor, rows int) (start, end int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start = cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start > total-rows {
		start = total - rows
	}
	return start, start + rows
}
