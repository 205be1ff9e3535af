package controller

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// NewStyledUI creates a SimpleUI that highlights titles and warnings for terminals.
func NewStyledUI(cmd *cobra.Command) *SimpleUI {
	ui := NewSimpleUI(cmd)
	ui.title = func(s string) string { return titleStyle.Render(s) }
	ui.warn = func(s string) string { return warnStyle.Render(s) }

	return ui
}
