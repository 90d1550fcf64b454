package database

import (
	"context"
	"regexp"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
)

// Admin runs the administrative statements archup needs.
type Admin interface {
	Ping(ctx context.Context) error
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateDatabase(ctx context.Context, name string) error
	SetRootPassword(ctx context.Context, password string) error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

// ValidateName rejects names that would need quoting beyond backticks.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return errors.Newf(errors.ErrDBInvalidName, "invalid database name %q", name).
			WithDetail("name", name)
	}
	return nil
}

// QuoteString renders s as a single-quoted SQL string literal.
func QuoteString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\x00", `\0`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

func createStatement(name string) string {
	return "CREATE DATABASE IF NOT EXISTS `" + name + "`"
}

func passwordStatement(password string) string {
	return "SET PASSWORD FOR 'root'@'localhost' = PASSWORD(" + QuoteString(password) + ")"
}
