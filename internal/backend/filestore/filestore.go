// Package filestore implements storage.Store as a single JSON object file.
//
// The file maps keys to string values, like a browser's local storage.
// Every operation holds an OS file lock on a sibling ".lock" file so that
// two ltask processes never interleave a read-modify-write.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"ltask/internal/storage"
)

const lockSuffix = ".lock"

// Store is a JSON file backed key-value store.
type Store struct {
	path string
	lock *flock.Flock
}

var _ storage.Store = (*Store)(nil)

// Open prepares a store at path, creating its directory.
// The file itself is created on the first write.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{
		path: path,
		lock: flock.New(path + lockSuffix),
	}, nil
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, storage.ErrKeyRequired
	}
	var (
		value string
		ok    bool
	)
	err := s.withLock(ctx, false, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		value, ok = entries[key]
		return nil
	})
	return value, ok, err
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return storage.ErrKeyRequired
	}
	return s.withLock(ctx, true, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		entries[key] = value
		return s.write(entries)
	})
}

// Remove implements storage.Store.
func (s *Store) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return storage.ErrKeyRequired
	}
	return s.withLock(ctx, true, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		if _, ok := entries[key]; !ok {
			return nil
		}
		delete(entries, key)
		return s.write(entries)
	})
}

// Keys implements storage.Store.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.withLock(ctx, false, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		for k := range entries {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

// Close releases the file lock. Unlock is idempotent.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

func (s *Store) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	if exclusive {
		err = s.lock.Lock()
	} else {
		err = s.lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// read loads the whole file. A missing or empty file is an empty store.
// A file that is not a JSON object of strings is reported as corrupt
// rather than silently replaced, so other lists in it are not lost.
func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	entries := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt store file %s: %w", s.path, err)
	}
	return entries, nil
}

// write replaces the file atomically via a temp file and rename.
func (s *Store) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
