// Package envfile reads the project env file and generates the .env the
// cloned application runs with.
package envfile

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/joho/godotenv"
)

// Keys read from the env file
const (
	KeyDBName        = "DB_NAME"
	KeyDBPassword    = "DB_PASSWORD"
	KeyProjectName   = "PROJECT_NAME"
	KeyProjectOwner  = "PROJECT_OWNER"
	KeyProjectBranch = "PROJECT_BRANCH"
	KeySecretKey     = "SECRET_KEY"
)

// Values is a parsed env file. A missing file parses to empty Values.
type Values map[string]string

// Read parses path. A missing file is not an error: every lookup then
// falls back to its default.
func Read(fs filesystem.FS, path string) (Values, error) {
	if path == "" || !filesystem.Exists(fs, path) {
		return Values{}, nil
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read env file %s", path)
	}
	return Parse(data)
}

// Parse parses env file content.
func Parse(data []byte) (Values, error) {
	m, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid env file")
	}
	return Values(m), nil
}

// Get returns the value for key, or def when the key is absent or empty.
func (v Values) Get(key, def string) string {
	if val, ok := v[key]; ok && strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

// Lookup reads a single key from the env file at path, falling back to def.
func Lookup(fs filesystem.FS, path, key, def string) (string, error) {
	values, err := Read(fs, path)
	if err != nil {
		return def, err
	}
	return values.Get(key, def), nil
}
