package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dkoosis/marquee/pkg/marquee"
)

// helpMarkdown builds the command listing as a Markdown table.
func helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("## Available Commands\n\n")
	sb.WriteString("| Command | Description |\n")
	sb.WriteString("|---|---|\n")
	for _, c := range marquee.Commands {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", c.Name, c.Description)
	}
	return sb.String()
}

// renderHelp renders the command listing once for the TUI. It falls back to
// plainHelp if glamour cannot render.
func renderHelp(wrap int, noColor bool) string {
	style := "dark"
	if noColor {
		style = "notty"
	}
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return plainHelp()
	}
	out, err := r.Render(helpMarkdown())
	if err != nil {
		return plainHelp()
	}
	return strings.Trim(out, "\n")
}
