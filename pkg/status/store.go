package status

import (
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/pelletier/go-toml/v2"
)

// Store persists the last run's report.
type Store struct {
	fs   filesystem.FS
	path string
}

// NewStore creates a store writing to path.
func NewStore(fs filesystem.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path is the file the report is kept in.
func (s *Store) Path() string { return s.path }

// Save replaces the stored report with r.
func (s *Store) Save(r Report) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode last run")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", filepath.Dir(s.path))
	}
	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", s.path)
	}
	return nil
}

// Load reads the stored report. A missing file is NOT_FOUND.
func (s *Store) Load() (Report, error) {
	var r Report
	if !filesystem.Exists(s.fs, s.path) {
		return r, errors.Newf(errors.ErrNotFound, "no previous run recorded at %s", s.path).WithDetail("path", s.path)
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return r, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", s.path)
	}
	if err := toml.Unmarshal(data, &r); err != nil {
		return r, errors.Wrapf(err, errors.ErrConfigParse, "invalid last run file %s", s.path).WithDetail("path", s.path)
	}
	return r, nil
}
