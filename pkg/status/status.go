// Package status tracks the outcome of every provisioning step and
// renders the end-of-run summary.
package status

import "sort"

// Category names a line in the summary.
type Category string

const (
	Initialization     Category = "Initialization"
	Aliases            Category = "Aliases"
	Packages           Category = "Packages"
	MariaDB            Category = "MariaDB"
	Database           Category = "Database"
	DatabasePassword   Category = "Database Password"
	GithubLogin        Category = "Github Login"
	CloneProject       Category = "Clone Project"
	Configuration      Category = "Configuration"
	VirtualEnvironment Category = "Virtual Environment"
	Dependencies       Category = "Dependencies"
	Migration          Category = "Migration"
	Build              Category = "Build"
)

// Categories lists every category in summary order.
var Categories = []Category{
	Initialization,
	Aliases,
	Packages,
	MariaDB,
	Database,
	DatabasePassword,
	GithubLogin,
	CloneProject,
	Configuration,
	VirtualEnvironment,
	Dependencies,
	Migration,
	Build,
}

// Common outcomes
const (
	Success = "success"
	Failed  = "failed"
	Skipped = "skipped"
)

// Entry is one category with its last recorded outcome.
type Entry struct {
	Category Category `toml:"category" yaml:"category"`
	Outcome  string   `toml:"outcome" yaml:"outcome"`
}

// Map holds the last outcome per category. Setting a category replaces
// whatever was recorded before. Steps run one after another, so a Map is
// not safe for concurrent use.
type Map struct {
	outcomes map[Category]string
}

// NewMap returns a map with Initialization already marked successful.
func NewMap() *Map {
	m := &Map{outcomes: make(map[Category]string)}
	m.Set(Initialization, Success)
	return m
}

// Set records outcome for c.
func (m *Map) Set(c Category, outcome string) {
	m.outcomes[c] = outcome
}

// Get returns the outcome for c, or "" when nothing was recorded.
func (m *Map) Get(c Category) string {
	return m.outcomes[c]
}

// Entries returns the recorded categories in summary order. Categories
// outside the known list come last, sorted by name.
func (m *Map) Entries() []Entry {
	var out []Entry
	seen := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		seen[c] = true
		if o := m.outcomes[c]; o != "" {
			out = append(out, Entry{Category: c, Outcome: o})
		}
	}
	var extra []Category
	for c, o := range m.outcomes {
		if !seen[c] && o != "" {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		out = append(out, Entry{Category: c, Outcome: m.outcomes[c]})
	}
	return out
}

// Failures returns the categories whose outcome is failed.
func (m *Map) Failures() []Category {
	var out []Category
	for _, e := range m.Entries() {
		if e.Outcome == Failed {
			out = append(out, e.Category)
		}
	}
	return out
}
