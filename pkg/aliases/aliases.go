package aliases

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
)

// Block markers
const (
	StartMarker = "# Aliases"
	EndMarker   = "# end_alises"
)

var (
	startRe = regexp.MustCompile(`(?m)^[ \t]*# Aliases[ \t]*\r?$`)
	endRe   = regexp.MustCompile(`(?m)^[ \t]*# end_alises[ \t]*\r?$`)
)

// Outcome of an injection
type Outcome string

const (
	Updated   Outcome = "updated"
	Unchanged Outcome = "unchanged"
)

// Block renders content between the markers.
func Block(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return StartMarker + "\n" + strings.TrimRight(content, "\n") + "\n" + EndMarker
}

// Apply returns rc with the alias block set to content. An existing block
// is replaced in place; otherwise the block is appended. A start marker
// without a following end marker, or the reverse, is an error, and so is
// content carrying a marker line of its own. CRLF files keep CRLF.
func Apply(rc, content string) (string, error) {
	if startRe.MatchString(content) || endRe.MatchString(content) {
		return "", errors.New(errors.ErrInvalidInput, "alias content must not contain marker lines")
	}

	nl := "\n"
	if strings.Contains(rc, "\r\n") {
		nl = "\r\n"
	}
	block := strings.ReplaceAll(Block(content), "\n", nl)

	start := startRe.FindStringIndex(rc)
	end := endRe.FindStringIndex(rc)

	switch {
	case start == nil && end == nil:
		var b strings.Builder
		b.WriteString(rc)
		if rc != "" && !strings.HasSuffix(rc, "\n") {
			b.WriteString(nl)
		}
		b.WriteString(block)
		b.WriteString(nl)
		return b.String(), nil

	case start == nil || end == nil:
		return "", errors.New(errors.ErrMarkerMismatch, "alias markers are not paired")
	}

	if end[0] < start[0] {
		// The first end marker precedes the first start marker; look for
		// one after it before giving up.
		next := endRe.FindStringIndex(rc[start[1]:])
		if next == nil {
			return "", errors.New(errors.ErrMarkerMismatch, "alias end marker found before start marker")
		}
		end = []int{next[0] + start[1], next[1] + start[1]}
	}

	// The line ending after the end marker stays with the rest of the file.
	tail := end[1]
	if tail > end[0] && rc[tail-1] == '\r' {
		tail--
	}
	return rc[:start[0]] + block + rc[tail:], nil
}

// Inject writes content into the alias block of the rc file at rcPath.
// The file is only rewritten when the block changes.
func Inject(fs filesystem.FS, rcPath, content string) (Outcome, error) {
	logger := logging.GetLogger("aliases")

	if !filesystem.Exists(fs, rcPath) {
		return "", errors.Newf(errors.ErrFileNotFound, "file not found: %s", rcPath).WithDetail("path", rcPath)
	}

	data, err := fs.ReadFile(rcPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rcPath)
	}

	updated, err := Apply(string(data), content)
	if err != nil {
		if ae, ok := err.(*errors.ArchupError); ok {
			ae.WithDetail("path", rcPath)
		}
		return "", err
	}

	if updated == string(data) {
		logger.Debug().Str("rc", rcPath).Msg("alias block already current")
		return Unchanged, nil
	}

	info, err := fs.Stat(rcPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", rcPath)
	}
	if err := fs.WriteFile(rcPath, []byte(updated), info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", rcPath)
	}

	logger.Info().Str("rc", rcPath).Msg("alias block updated")
	return Updated, nil
}
