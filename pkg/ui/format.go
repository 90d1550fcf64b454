// Package ui decides how archup renders output for the current terminal.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is how summaries are rendered.
type Format string

const (
	// FormatAuto picks terminal or text from the output
	FormatAuto Format = "auto"
	// FormatTerminal is a colored pterm table
	FormatTerminal Format = "terminal"
	// FormatText is aligned plain text, safe for logs and pipes
	FormatText Format = "text"
	// FormatYAML is the machine-readable form
	FormatYAML Format = "yaml"
)

var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"terminal": FormatTerminal,
	"term":     FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat reads a --format value. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
}

// DetectFormat picks a format for output: text when NO_COLOR is set, the
// output is not a terminal, or the terminal has no colors.
func DetectFormat(output *os.File) Format {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return FormatText
	case !IsInteractive(output):
		return FormatText
	case termenv.EnvColorProfile() == termenv.Ascii:
		return FormatText
	default:
		return FormatTerminal
	}
}

// Resolve turns FormatAuto into a concrete format for w. Writers that are
// not files are treated as plain text.
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// IsInteractive reports whether f is a terminal a user can answer
// prompts on.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
