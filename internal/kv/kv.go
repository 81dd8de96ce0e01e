// Package kv provides the key-value slots the task list is persisted into.
//
// A Storage holds opaque byte values under string keys. The task store
// only ever uses one key and always overwrites the whole value.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
)

// ErrClosed is returned by operations on a closed Storage.
var ErrClosed = errors.New("storage is closed")

// Storage is a byte-valued key-value store.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Close releases resources held by the storage.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "checklist.db"

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// ValidateBackend checks that name is a supported backend.
func ValidateBackend(name string) error {
	if slices.Contains(Backends(), name) {
		return nil
	}
	return clierr.Newf(clierr.InvalidBackend, "invalid storage backend %q", name).
		WithDetails(map[string]any{
			"backend": name,
			"allowed": Backends(),
		})
}

// Open returns the storage for the named backend rooted at dir.
func Open(backend, dir string) (Storage, error) {
	switch backend {
	case BackendFile:
		return NewFile(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	case BackendMemory:
		return NewMemory(), nil
	}
	if err := ValidateBackend(backend); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("backend %q has no constructor", backend)
}

// Files returns the base names of the files in dir that hold key for the
// given backend. The memory backend keeps nothing on disk.
func Files(backend, key string) []string {
	switch backend {
	case BackendFile:
		return []string{key + ".json"}
	case BackendSQLite:
		return []string{SQLiteFileName, SQLiteFileName + "-wal"}
	}
	return nil
}
