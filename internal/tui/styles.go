package tui

import (
	"github.com/andy/invoicedesk/internal/listview"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("39")  // Blue
	secondaryColor = lipgloss.Color("141") // Lavender
	accentColor    = lipgloss.Color("205") // Pink
	mutedColor     = lipgloss.Color("241") // Gray
	successColor   = lipgloss.Color("76")  // Green
	warningColor   = lipgloss.Color("214") // Orange
	errorColor     = lipgloss.Color("196") // Red
	infoColor      = lipgloss.Color("117") // Bright cyan

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(infoColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Tabs
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Underline(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(mutedColor)
	activeBadgeStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0")).Padding(0, 1)
	badgeStyle       = lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(mutedColor).Padding(0, 1)

	// Chips
	paidChipStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
)

// tokenColor resolves a listview color token to a terminal color
func tokenColor(token string) lipgloss.Color {
	switch token {
	case listview.ColorSecondary:
		return secondaryColor
	case listview.ColorSuccess:
		return successColor
	case listview.ColorWarning:
		return warningColor
	case listview.ColorError:
		return errorColor
	case listview.ColorInfo:
		return infoColor
	default:
		return primaryColor
	}
}

// iconGlyph draws a status icon in the terminal
func iconGlyph(icon string) string {
	switch icon {
	case "mdi:send":
		return "➤"
	case "mdi:check":
		return "✓"
	case "mdi:content-save-outline":
		return "✎"
	case "mdi:chart-pie":
		return "◔"
	case "mdi:information-outline":
		return "!"
	case "mdi:arrow-down":
		return "↓"
	default:
		return "?"
	}
}
