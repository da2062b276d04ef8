package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrQuotaExceeded is returned by a Backend when a write does not fit the
// storage quota. The store recovers once by evicting old presets.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is the key-value persistence behind the preset store. Reads and
// writes are whole-record: concurrent writers are not protected, which is
// an accepted limitation.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileBackend stores each record as a file in a directory. A MaxBytes of
// zero means no quota.
type FileBackend struct {
	Dir      string
	MaxBytes int
}

// NewFileBackend creates a file backend rooted at dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{Dir: dir}
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

func (b *FileBackend) Set(key string, value []byte) error {
	if b.MaxBytes > 0 && len(value) > b.MaxBytes {
		return fmt.Errorf("record %s is %d bytes: %w", key, len(value), ErrQuotaExceeded)
	}
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(b.path(key), value, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// MemoryBackend is an in-memory Backend used in tests. MaxBytes of zero
// means no quota.
type MemoryBackend struct {
	MaxBytes int
	records  map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: map[string][]byte{}}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	data, ok := b.records[key]
	return data, ok, nil
}

func (b *MemoryBackend) Set(key string, value []byte) error {
	if b.MaxBytes > 0 && len(value) > b.MaxBytes {
		return ErrQuotaExceeded
	}
	b.records[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	delete(b.records, key)
	return nil
}
