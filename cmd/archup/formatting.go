package archup

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/archup/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// emphasize makes help headings bold, but only on a terminal so piped
// help stays free of escape codes.
func emphasize(s string) string {
	if !ui.IsInteractive(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// initTemplateFormatting registers the functions the usage template uses.
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":  emphasize,
		"upper": strings.ToUpper,
		"boldUpper": func(s string) string {
			return emphasize(strings.ToUpper(s))
		},
	})
}
