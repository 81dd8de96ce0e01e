package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/twiced-technology-gmbh/checklist/internal/filelock"
)

const (
	fileMode     = 0o600
	dirMode      = 0o750
	lockFileName = ".lock"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// File stores each key as <dir>/<key>.json. Writes go to a temp file that
// is renamed over the target while holding <dir>/.lock, so readers never
// see a partially written value.
type File struct {
	dir string
}

// NewFile returns a File storage rooted at dir, creating dir if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (s *File) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *File) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Storage.
func (s *File) Get(key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.Path(key)) //nolint:gosec // path built from validated key
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Storage.
func (s *File) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return filelock.With(filepath.Join(s.dir, lockFileName), func() error {
		return writeAtomic(s.Path(key), value)
	})
}

// Close implements Storage. File holds no open handles between calls.
func (s *File) Close() error {
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
