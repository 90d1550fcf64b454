// Package style holds archup's terminal styles: lipgloss styles for free
// text and errors, pterm styles for step outcomes.
package style

import (
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Italic(true)
)

// RenderError formats err for the final line on stderr: the message in
// the error style, followed by its details when it carries any.
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	if path, ok := errors.GetErrorDetails(err)["path"].(string); ok && path != "" {
		b.WriteString("\n  ")
		b.WriteString(MutedStyle.Render("path:"))
		b.WriteString(" ")
		b.WriteString(PathStyle.Render(path))
	}
	return b.String()
}
