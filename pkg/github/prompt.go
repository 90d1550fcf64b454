package github

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
)

// Prompter asks the user a question and returns the answer line.
type Prompter interface {
	Ask(question string) (string, error)
}

// LinePrompter reads answers line by line from a reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter on in/out, usually stdin/stdout.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and reads one line. EOF counts as an answer so a
// closed stdin ends the conversation instead of failing it.
func (p *LinePrompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read answer")
	}
	if err == io.EOF && line == "" {
		return "q", nil
	}
	return strings.TrimSpace(line), nil
}
