package status

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/style"
	"github.com/arthur-debert/archup/pkg/ui"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Render writes the summary of r to w in format. FormatAuto must be
// resolved by the caller.
func Render(w io.Writer, r Report, format ui.Format) error {
	switch format {
	case ui.FormatTerminal:
		return renderTable(w, r)
	case ui.FormatText, ui.FormatAuto:
		return renderText(w, r)
	case ui.FormatYAML:
		return renderYAML(w, r)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported format %s", format)
	}
}

func renderText(w io.Writer, r Report) error {
	width := 0
	for _, s := range r.Steps {
		if len(s.Category) > width {
			width = len(s.Category)
		}
	}

	var b strings.Builder
	b.WriteString("Summary:\n")
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "  %-*s -- %s\n", width, s.Category, s.Outcome)
	}
	if !r.Finished.IsZero() {
		fmt.Fprintf(&b, "Finished %s in %s\n", r.Finished.Format(time.RFC3339), r.Finished.Sub(r.Started).Round(time.Second))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(w io.Writer, r Report) error {
	data := pterm.TableData{{"Step", "Outcome"}}
	for _, s := range r.Steps {
		data = append(data, []string{
			string(s.Category),
			style.OutcomeStyle(s.Outcome).Sprint(style.Indicator(s.Outcome) + " " + s.Outcome),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render summary table")
	}

	title := style.TitleStyle.Render("Summary")
	if r.DryRun {
		title += " " + style.MutedStyle.Render("(dry run)")
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", title, table)
	return err
}

func renderYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode summary")
	}
	return enc.Close()
}
