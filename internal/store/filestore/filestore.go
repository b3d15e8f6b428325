// Package filestore persists the whole task collection to a single file.
//
// The file is human-readable and portable: a flat list of task records in
// JSON (default), YAML or TOML, picked by extension. Every save replaces the
// file wholesale; every load replaces the caller's collection wholesale.
// There is no locking: one local user, one process.
package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todolist/internal/model"
)

// DefaultFileName is the data file used when no path is configured.
const DefaultFileName = "todolist.json"

// ErrCorrupt wraps every decode or schema failure on load.
var ErrCorrupt = errors.New("task file is corrupt")

// Store reads and writes one task file.
type Store struct {
	path   string
	format Format
}

// New returns a Store for path, choosing the format from its extension.
func New(path string) *Store {
	return &Store{path: path, format: FormatFor(path)}
}

func (s *Store) Path() string   { return s.path }
func (s *Store) Format() Format { return s.format }

// Load decodes the full file. A missing file yields an error wrapping
// fs.ErrNotExist; bad content yields an error wrapping ErrCorrupt.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.Task{}, nil
	}
	tasks, err := codecFor(s.format).decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s unmarshal: %w", ErrCorrupt, s.format, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := checkSchema(tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := checkText(tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return tasks, nil
}

// Save encodes tasks and swaps them in for the current file contents.
// The data goes to a temp file next to the target which is then renamed over
// it, so a failed save leaves the previous file as it was. Tasks that could
// not be read back unchanged are refused.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := checkText(tasks); err != nil {
		return fmt.Errorf("invalid tasks: %w", err)
	}
	b, err := codecFor(s.format).encode(tasks)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", s.format, err)
	}
	if err := writeFileAtomic(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Backup copies the current file to BackupPath. The copy is written the same
// way as a save.
func (s *Store) Backup() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	dst := s.BackupPath()
	if err := writeFileAtomic(dst, b, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}

// BackupPath is the data file path with ".bak" appended.
func (s *Store) BackupPath() string { return s.path + ".bak" }

// writeFileAtomic replaces path with data. A symlinked path is followed so
// the link survives, and an existing file keeps its permissions; perm only
// applies to new files.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if resolved, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		path = resolved
	}
	if fi, statErr := os.Stat(path); statErr == nil {
		perm = fi.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
