package provision

import (
	"sort"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
)

// Step names accepted by --only and --skip, in run order
const (
	StepAliases  = "aliases"
	StepPackages = "packages"
	StepDatabase = "database"
	StepClone    = "clone"
	StepVenv     = "venv"
	StepConfig   = "config"
	StepDeps     = "deps"
	StepMigrate  = "migrate"
	StepCleanup  = "cleanup"
)

// StepNames lists every step in the order they run.
var StepNames = []string{
	StepAliases,
	StepPackages,
	StepDatabase,
	StepClone,
	StepVenv,
	StepConfig,
	StepDeps,
	StepMigrate,
	StepCleanup,
}

// Selection decides which steps run.
type Selection struct {
	only map[string]bool
	skip map[string]bool
}

// NewSelection validates the names given to --only and --skip.
func NewSelection(only, skip []string) (Selection, error) {
	s := Selection{only: map[string]bool{}, skip: map[string]bool{}}
	known := make(map[string]bool, len(StepNames))
	for _, n := range StepNames {
		known[n] = true
	}

	var unknown []string
	add := func(set map[string]bool, names []string) {
		for _, n := range names {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == "" {
				continue
			}
			if !known[n] {
				unknown = append(unknown, n)
				continue
			}
			set[n] = true
		}
	}
	add(s.only, only)
	add(s.skip, skip)

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return s, errors.Newf(errors.ErrInvalidInput, "unknown step(s): %s (valid: %s)",
			strings.Join(unknown, ", "), strings.Join(StepNames, ", "))
	}
	return s, nil
}

// Enabled reports whether step runs.
func (s Selection) Enabled(step string) bool {
	if s.skip[step] {
		return false
	}
	return len(s.only) == 0 || s.only[step]
}
