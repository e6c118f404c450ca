package autosave

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when no snapshot exists for a key.
var ErrNotFound = errors.New("autosave: snapshot not found")

// SnapshotStore is a key-value store for timestamped snapshots.
// Last write wins; there is no cross-process locking. A real backend
// can be substituted without touching the Saver.
type SnapshotStore interface {
	Get(key string) (data []byte, savedAt time.Time, err error)
	Set(key string, data []byte) error
	Clear(key string) error
}

// FileStore keeps snapshots as files in a directory: one file
// "autosave_<key>" with the JSON payload and one
// "autosave_<key>_timestamp" holding the epoch-millisecond write
// time as a string.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("autosave: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) dataPath(key string) string {
	return filepath.Join(fs.dir, "autosave_"+sanitize(key))
}

func (fs *FileStore) timestampPath(key string) string {
	return filepath.Join(fs.dir, "autosave_"+sanitize(key)+"_timestamp")
}

// sanitize keeps keys filesystem-safe.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			return r
		}
		return '_'
	}, key)
}

func (fs *FileStore) Get(key string) ([]byte, time.Time, error) {
	data, err := os.ReadFile(fs.dataPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("autosave: read %q: %w", key, err)
	}

	raw, err := os.ReadFile(fs.timestampPath(key))
	if err != nil {
		// A payload without a timestamp is treated as absent.
		return nil, time.Time{}, ErrNotFound
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil, time.Time{}, ErrNotFound
	}

	return data, time.UnixMilli(ms), nil
}

func (fs *FileStore) Set(key string, data []byte) error {
	if err := os.WriteFile(fs.dataPath(key), data, 0o644); err != nil {
		return fmt.Errorf("autosave: write %q: %w", key, err)
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := os.WriteFile(fs.timestampPath(key), []byte(ts), 0o644); err != nil {
		return fmt.Errorf("autosave: write timestamp %q: %w", key, err)
	}
	return nil
}

func (fs *FileStore) Clear(key string) error {
	err1 := os.Remove(fs.dataPath(key))
	err2 := os.Remove(fs.timestampPath(key))
	if err1 != nil && !os.IsNotExist(err1) {
		return fmt.Errorf("autosave: clear %q: %w", key, err1)
	}
	if err2 != nil && !os.IsNotExist(err2) {
		return fmt.Errorf("autosave: clear timestamp %q: %w", key, err2)
	}
	return nil
}
