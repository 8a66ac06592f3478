// Package ui renders the human-facing output of the informational commands.
// Nothing here is used on the pass_persist channel.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	PrimaryColor = lipgloss.Color("#5B9BD5") // Blue
	AccentColor  = lipgloss.Color("#00D4AA") // Teal accent

	SuccessColor = lipgloss.Color("#2ECC71") // Green
	WarningColor = lipgloss.Color("#F1C40F") // Yellow
	ErrorColor   = lipgloss.Color("#E74C3C") // Red
	InfoColor    = lipgloss.Color("#5B9BD5") // Blue

	TextColor    = lipgloss.Color("#FFFFFF") // White
	SubtextColor = lipgloss.Color("#B0B0B0") // Light gray
	MutedColor   = lipgloss.Color("#6C6C6C") // Dark gray
)

// Base styles
var (
	BoldStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true)

	WhiteStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Component styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SectionTitleStyle = BoldStyle.
				Foreground(TextColor)

	BorderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	BulletStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(SubtextColor)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Writable OIDs stand out in listings
	WritableStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)
)

// Status icons
const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconError   = "✗"
	IconInfo    = "ℹ"
	IconBullet  = "•"
)

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
)

// DefaultWidth is the default terminal width for formatting
const DefaultWidth = 60

// TableWidth is the width for table displays
const TableWidth = 100

// RenderBanner returns the styled product line
func RenderBanner(version string) string {
	return BannerStyle.Render("snmpagent") + " " + MutedStyle.Render(version)
}

// RenderSectionStart returns a styled section header
func RenderSectionStart(title string) string {
	return renderSectionStart(title, DefaultWidth)
}

// RenderTableSectionStart returns a section header as wide as a table
func RenderTableSectionStart(title string) string {
	return renderSectionStart(title, TableWidth)
}

func renderSectionStart(title string, width int) string {
	titlePart := SectionTitleStyle.Render(title)

	dashCount := width - lipgloss.Width(title) - 4 // "┌─ " + title + " ─"
	if dashCount < 0 {
		dashCount = 0
	}

	prefix := BorderStyle.Render(BoxTopLeft + BoxHorizontal + " ")
	suffix := BorderStyle.Render(" " + BoxHorizontal + strings.Repeat(BoxHorizontal, dashCount) + BoxTopRight)

	return prefix + titlePart + suffix
}

// RenderSectionEnd returns a styled section footer
func RenderSectionEnd() string {
	return BorderStyle.Render(BoxBottomLeft + strings.Repeat(BoxHorizontal, DefaultWidth) + BoxBottomRight)
}

// RenderTableSectionEnd returns a styled section footer for tables
func RenderTableSectionEnd() string {
	return BorderStyle.Render(BoxBottomLeft + strings.Repeat(BoxHorizontal, TableWidth) + BoxBottomRight)
}

// RenderStatus returns a styled status message
func RenderStatus(status, message string) string {
	var icon string
	var style lipgloss.Style

	switch status {
	case "success":
		icon = IconSuccess
		style = SuccessStyle
	case "warning":
		icon = IconWarning
		style = WarningStyle
	case "error":
		icon = IconError
		style = ErrorStyle
	default:
		icon = IconInfo
		style = InfoStyle
	}

	return "  " + style.Render(icon) + " " + WhiteStyle.Render(message)
}

// RenderKeyValue returns a styled key-value pair
func RenderKeyValue(key, value string) string {
	return "  " + BulletStyle.Render(IconBullet) + " " +
		KeyStyle.Render(key) + " " +
		SeparatorStyle.Render(":") + " " +
		ValueStyle.Render(value)
}
