package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"companypicker/internal/domain"
)

// renderHelpContent renders the full key reference shown in the pager
func renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	entry := func(keys, desc string) string {
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", keys)), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Company Picker Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Selected companies"))
	help.WriteString("\n")
	help.WriteString(entry("↑/↓, j/k", "Move between companies"))
	help.WriteString(entry("g/G", "Go to top/bottom"))
	help.WriteString(entry("d, x, Del", "Remove the company under the cursor"))
	help.WriteString(entry("a, +, Tab", "Open the company menu"))
	help.WriteString(entry("Enter", "Open the menu from \"+ Add company\""))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Company menu"))
	help.WriteString("\n")
	help.WriteString(entry("type", "Filter companies by name"))
	help.WriteString(entry("↑/↓", "Move between matches"))
	help.WriteString(entry("Enter", "Add the highlighted company"))
	help.WriteString(entry("Esc, Tab", "Close the menu"))
	help.WriteString("\n")

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(noteStyle.Render(fmt.Sprintf("  Up to %d companies can be selected. Changes are saved automatically.", domain.MaxSelected)))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(entry("?", "Show this help"))
	help.WriteString(entry("q, Ctrl+C", "Quit"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Do not leave the help text on screen after exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
