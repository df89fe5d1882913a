package views

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Cursor        lipgloss.Style
	Delete        lipgloss.Style
	AddControl    lipgloss.Style
	AddDisabled   lipgloss.Style
	PickerBox     lipgloss.Style
	PickerPrompt  lipgloss.Style
	Check         lipgloss.Style
	Counter       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusSaving  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Delete:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		AddControl:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		AddDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		PickerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		PickerPrompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Check:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Counter:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusSaving:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}

// ContrastColor returns black or white, whichever reads better on the
// given "#rrggbb" background
func ContrastColor(hex string) string {
	var r, g, b int
	if len(hex) == 7 {
		r = hexByte(hex[1:3])
		g = hexByte(hex[3:5])
		b = hexByte(hex[5:7])
	}
	// ITU-R BT.601 luma
	if r*299+g*587+b*114 > 128*1000 {
		return "#000000"
	}
	return "#ffffff"
}

func hexByte(s string) int {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}
