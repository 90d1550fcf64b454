package provision

import (
	"io"

	"github.com/arthur-debert/archup/pkg/status"
	"github.com/arthur-debert/archup/pkg/style"
	"github.com/pterm/pterm"
)

// Reporter prints one line per step outcome as the run progresses.
type Reporter struct {
	out     io.Writer
	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		out:     w,
		info:    pterm.Info.WithWriter(w),
		success: pterm.Success.WithWriter(w),
		warning: pterm.Warning.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
	}
}

// Message prints a plain line.
func (r *Reporter) Message(msg string) {
	pterm.Fprintln(r.out, msg)
}

// Start announces a step.
func (r *Reporter) Start(name string) {
	r.info.Println(name + "...")
}

// Outcome prints the result recorded for a category.
func (r *Reporter) Outcome(c status.Category, outcome string) {
	line := string(c) + " -- " + outcome
	switch style.OutcomeLevel(outcome) {
	case style.LevelChanged:
		r.success.Println(line)
	case style.LevelFailed:
		r.failure.Println(line)
	default:
		r.warning.Println(line)
	}
}

// Failure prints the error behind a failed category.
func (r *Reporter) Failure(c status.Category, err error) {
	r.failure.Println(string(c) + ": " + err.Error())
}

// Warn prints a warning that is not tied to an outcome.
func (r *Reporter) Warn(msg string) {
	r.warning.Println(msg)
}
