package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/archup/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for archup
	EnvConfigDir = "ARCHUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for archup
	EnvStateDir = "ARCHUP_STATE_DIR"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "archup"

	// ConfigFileName is the user configuration file inside the config dir
	ConfigFileName = "config.toml"

	// LockFileName guards against two provisioning runs at once
	LockFileName = "archup.lock"

	// LastRunFileName stores the outcome map of the previous run
	LastRunFileName = "last-run.toml"
)

// Paths holds the resolved locations for one archup invocation.
type Paths struct {
	workdir   string
	home      string
	configDir string
	stateDir  string
}

// New resolves paths relative to workdir. An empty workdir means the
// current directory.
func New(workdir string) (*Paths, error) {
	if workdir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		workdir = cwd
	}

	home, err := HomeDir()
	if err != nil {
		return nil, err
	}

	expanded, err := ExpandHome(workdir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid workdir %q", workdir)
	}

	p := &Paths{
		workdir: abs,
		home:    home,
	}
	p.configDir = ConfigDir()
	p.stateDir = StateDir()
	return p, nil
}

// ConfigDir is ARCHUP_CONFIG_DIR, or archup under the XDG config home.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir is ARCHUP_STATE_DIR, or archup under the XDG state home.
// The log file, lock and last-run record all live here.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// Workdir is where the project is cloned and .env, venv and package.json live.
func (p *Paths) Workdir() string { return p.workdir }

// Home is the invoking user's home directory.
func (p *Paths) Home() string { return p.home }

// ConfigDir is archup's own configuration directory.
func (p *Paths) ConfigDir() string { return p.configDir }

// StateDir holds the lock file and the last-run record.
func (p *Paths) StateDir() string { return p.stateDir }

// ConfigFile is the default user configuration file.
func (p *Paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

// LockFile is the flock path for provisioning runs.
func (p *Paths) LockFile() string { return filepath.Join(p.stateDir, LockFileName) }

// LastRunFile is where the previous run's status map is stored.
func (p *Paths) LastRunFile() string { return filepath.Join(p.stateDir, LastRunFileName) }

// InWorkdir joins elements onto the workdir.
func (p *Paths) InWorkdir(elem ...string) string {
	return filepath.Join(append([]string{p.workdir}, elem...)...)
}

// Resolve expands ~ and makes relative paths relative to the workdir.
func (p *Paths) Resolve(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(p.workdir, expanded), nil
}

// IsProtected reports whether path must never be removed recursively:
// the filesystem root, the home directory, the workdir, or any directory
// containing one of them.
func (p *Paths) IsProtected(path string) bool {
	clean := filepath.Clean(path)
	if clean == string(filepath.Separator) || clean == "." {
		return true
	}
	for _, keep := range []string{p.home, p.workdir} {
		rel, err := filepath.Rel(clean, filepath.Clean(keep))
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// HomeDir returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := HomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}
