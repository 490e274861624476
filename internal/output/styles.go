package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Log level styles
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Default lipgloss.Style
	Error   lipgloss.Style
	Fault   lipgloss.Style

	// Component styles
	Timestamp lipgloss.Style
	Process   lipgloss.Style
	Subsystem lipgloss.Style

	// Status styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// Picker styles
	Title    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}{
	// Log levels - distinctive colors
	Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Default: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	Fault:   lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true),

	// Components
	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Process:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	Subsystem: lipgloss.NewStyle().Foreground(lipgloss.Color("142")),

	// Status
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

	// Picker
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// LevelStyle returns the style for a given log level string
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "Debug":
		return Styles.Debug
	case "Info":
		return Styles.Info
	case "Error":
		return Styles.Error
	case "Fault":
		return Styles.Fault
	default:
		return Styles.Default
	}
}
