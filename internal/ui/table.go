package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snmpagent/pkg/utils"
)

// Column widths for the OID listing
const (
	oidColumn    = 26
	nameColumn   = 20
	typeColumn   = 10
	accessColumn = 11
	descColumn   = TableWidth - oidColumn - nameColumn - typeColumn - accessColumn - 8
)

// OIDRow is one line of the OID listing
type OIDRow struct {
	OID         string
	Name        string
	Type        string
	Writable    bool
	Description string
}

var (
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	plainCell  = lipgloss.NewStyle()
)

func cell(style lipgloss.Style, width int, text string) string {
	return style.Width(width).MaxWidth(width).Render(utils.TruncateString(text, width))
}

// RenderOIDTable lays rows out in fixed-width columns under a section header
func RenderOIDTable(title string, rows []OIDRow) string {
	var b strings.Builder

	b.WriteString(RenderTableSectionStart(title))
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top,
		cell(headerCell, oidColumn, "OID"), " ",
		cell(headerCell, nameColumn, "NAME"), " ",
		cell(headerCell, typeColumn, "TYPE"), " ",
		cell(headerCell, accessColumn, "ACCESS"), " ",
		cell(headerCell, descColumn, "DESCRIPTION"),
	))
	b.WriteString("\n")

	for _, r := range rows {
		access, accessStyle := "read-only", MutedStyle
		if r.Writable {
			access, accessStyle = "read-write", WritableStyle
		}
		b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top,
			cell(plainCell, oidColumn, r.OID), " ",
			cell(KeyStyle, nameColumn, r.Name), " ",
			cell(ValueStyle, typeColumn, r.Type), " ",
			cell(accessStyle, accessColumn, access), " ",
			cell(ValueStyle, descColumn, r.Description),
		))
		b.WriteString("\n")
	}

	b.WriteString(RenderTableSectionEnd())
	return b.String()
}
