package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"refield/internal/adapters/tui/styles"
)

// RenderHelpLine joins key bindings into the footer help line shown
// under every view.
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, styles.HelpKey.Render(help.Key)+" "+styles.HelpDesc.Render(help.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status line, red for errors and green for
// confirmations. Empty messages render as nothing.
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}
