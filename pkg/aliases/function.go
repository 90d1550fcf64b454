package aliases

import (
	"regexp"
	"strings"
)

// AdmFunction names the function holding the migration commands.
const AdmFunction = "adm"

// ExtractFunction returns the body lines of the shell function name in
// content. Both `function name {` and `name() {` forms are recognised.
// Lines are trimmed; blank lines and comments are dropped. A missing
// function yields nil.
func ExtractFunction(content, name string) []string {
	opening := regexp.MustCompile(`^\s*(function\s+` + regexp.QuoteMeta(name) + `(\s*\(\))?|` + regexp.QuoteMeta(name) + `\s*\(\))\s*\{\s*$`)

	var body []string
	inside := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inside {
			inside = opening.MatchString(line)
			continue
		}
		if trimmed == "}" {
			return body
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		body = append(body, trimmed)
	}
	// Unterminated function: keep what was collected.
	return body
}
