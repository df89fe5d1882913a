package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"companypicker/internal/logo"
)

// LogoStatus tracks a row's logo download
type LogoStatus int

const (
	LogoPending LogoStatus = iota
	LogoReady
	LogoFailed
)

// CompanyRow is one selected company as shown in the main panel
type CompanyRow struct {
	ID         int64
	Name       string
	Logo       string // rendered thumbnail when LogoStatus is LogoReady
	LogoStatus LogoStatus
}

// CompanyRenderer handles rendering of selected companies
type CompanyRenderer struct {
	styles     *Styles
	logoWidth  int
	logoHeight int
}

// NewCompanyRenderer creates a new company renderer
func NewCompanyRenderer(styles *Styles, logoWidth, logoHeight int) *CompanyRenderer {
	if logoWidth <= 0 {
		logoWidth = 4
	}
	if logoHeight <= 0 {
		logoHeight = 2
	}
	return &CompanyRenderer{
		styles:     styles,
		logoWidth:  logoWidth,
		logoHeight: logoHeight,
	}
}

// RowHeight returns the number of lines a company row takes
func (r *CompanyRenderer) RowHeight() int {
	return r.logoHeight
}

// RenderCompany renders one row: logo, name and delete control
func (r *CompanyRenderer) RenderCompany(row CompanyRow, isCursor bool, width int) string {
	marker := "  "
	if isCursor {
		marker = r.styles.Cursor.Render("› ")
	}

	var logoBlock string
	switch row.LogoStatus {
	case LogoReady:
		logoBlock = row.Logo
	case LogoFailed:
		logoBlock = RenderFallback(row.Name, r.logoWidth, r.logoHeight)
	default:
		logoBlock = r.styles.Dim.
			Width(r.logoWidth).
			Height(r.logoHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render("·")
	}

	deleteControl := r.styles.Delete.Render("✕")

	nameWidth := width - lipgloss.Width(marker) - r.logoWidth - lipgloss.Width(deleteControl) - 2
	if nameWidth < 1 {
		nameWidth = 1
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth)
	if isCursor {
		nameStyle = nameStyle.Inherit(r.styles.HighlightBg).Bold(true)
	}
	name := nameStyle.Render(truncate(row.Name, nameWidth))

	return lipgloss.JoinHorizontal(lipgloss.Center, marker, logoBlock, " ", name, " ", deleteControl)
}

// RenderFallback draws the placeholder shown when a logo cannot be loaded:
// the uppercased first letter on a colour derived from the name.
func RenderFallback(name string, width, height int) string {
	bg := logo.Color(name)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(ContrastColor(bg))).
		Bold(true).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(logo.Initial(name))
}

// RenderAddControl renders the "+ Add company" control
func (r *CompanyRenderer) RenderAddControl(enabled, isCursor bool) string {
	marker := "  "
	if isCursor {
		marker = r.styles.Cursor.Render("› ")
	}
	if !enabled {
		return marker + r.styles.AddDisabled.Render("+ Add company") +
			r.styles.Counter.Render(" limit reached")
	}
	label := r.styles.AddControl.Render("+ Add company")
	if isCursor {
		label = r.styles.AddControl.Inherit(r.styles.HighlightBg).Bold(true).Render("+ Add company")
	}
	return marker + label
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String() + "…"
}

// highlightMatch highlights the first case-insensitive match of query in text
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	// offsets are only valid when lowering kept byte lengths
	if query == "" || index == -1 || len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
