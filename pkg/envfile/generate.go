package envfile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/joho/godotenv"
)

// Outcome of writing the generated .env
type Outcome string

const (
	Created   Outcome = "created"
	Updated   Outcome = "updated"
	Unchanged Outcome = "unchanged"
)

// GenerateOptions describes the .env to produce.
type GenerateOptions struct {
	// Source is the env file passed on the command line.
	Source string
	// Extra is the project's build/env.txt. Its keys override Source.
	Extra string
	// Dest is the .env written in the workdir.
	Dest string
}

// Generate writes Dest as Source merged with Extra plus a SECRET_KEY. A
// SECRET_KEY from the sources wins; otherwise one already present in Dest
// is kept, so running twice yields the same file.
func Generate(fs filesystem.FS, opts GenerateOptions) (Outcome, error) {
	for _, p := range []string{opts.Source, opts.Extra} {
		if !filesystem.Exists(fs, p) {
			return "", errors.Newf(errors.ErrFileNotFound, "file not found: %s", p).WithDetail("path", p)
		}
	}

	source, err := fs.ReadFile(opts.Source)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", opts.Source)
	}
	extra, err := fs.ReadFile(opts.Extra)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", opts.Extra)
	}

	var existing []byte
	exists := filesystem.Exists(fs, opts.Dest)
	if exists {
		existing, err = fs.ReadFile(opts.Dest)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", opts.Dest)
		}
	}

	secret, err := secretFor(existing)
	if err != nil {
		return "", err
	}

	content, err := Compose(source, extra, secret)
	if err != nil {
		return "", err
	}

	if exists && string(existing) == content {
		return Unchanged, nil
	}
	if err := fs.WriteFile(opts.Dest, []byte(content), 0600); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", opts.Dest)
	}
	if exists {
		return Updated, nil
	}
	return Created, nil
}

// Compose merges the env sources by key. A key keeps the position of its
// first appearance and takes the value of its last, so extra overrides
// source. SECRET_KEY is set to secret only when neither source has one.
func Compose(source, extra []byte, secret string) (string, error) {
	merged := Values{}
	var order []string
	for _, data := range [][]byte{source, extra} {
		values, err := Parse(data)
		if err != nil {
			return "", err
		}
		for _, key := range keyOrder(data, values) {
			if _, seen := merged[key]; !seen {
				order = append(order, key)
			}
			merged[key] = values[key]
		}
	}

	if merged.Get(KeySecretKey, "") == "" {
		if _, seen := merged[KeySecretKey]; !seen {
			order = append(order, KeySecretKey)
		}
		merged[KeySecretKey] = secret
	}

	var b strings.Builder
	for _, key := range order {
		line, err := formatLine(key, merged[key])
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", key)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var keyRe = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?([A-Za-z_][A-Za-z0-9_.]*)[ \t]*[=:]`)

// keyOrder lists the keys of values in file order. Keys the scan misses
// follow in sorted order.
func keyOrder(data []byte, values Values) []string {
	seen := make(map[string]bool, len(values))
	keys := make([]string, 0, len(values))
	for _, m := range keyRe.FindAllSubmatch(data, -1) {
		key := string(m[1])
		if _, ok := values[key]; ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	var rest []string
	for key := range values {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func formatLine(key, value string) (string, error) {
	// Marshal rewrites integers, so 007 would become 7.
	if n, err := strconv.Atoi(value); err == nil && strconv.Itoa(n) != value {
		return fmt.Sprintf("%s=%q", key, value), nil
	}
	return godotenv.Marshal(map[string]string{key: value})
}

func secretFor(existing []byte) (string, error) {
	if len(existing) > 0 {
		if values, err := Parse(existing); err == nil {
			if secret := values[KeySecretKey]; secret != "" {
				return secret, nil
			}
		}
	}
	return NewSecretKey(SecretKeyLength)
}
