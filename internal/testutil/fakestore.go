// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ltask/internal/storage"
)

// FakeStore is an in-memory implementation of storage.Store for testing.
type FakeStore struct {
	mu      sync.RWMutex
	entries map[string]string
	closed  bool

	// Error injection for testing
	GetErr    error
	SetErr    error
	RemoveErr error
	KeysErr   error

	// Writes counts Set and Remove calls that reached the map.
	Writes int
}

var _ storage.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{entries: make(map[string]string)}
}

// Put stores a raw value without counting it as a write.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
}

// Raw returns the raw value for key.
func (f *FakeStore) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok
}

// Len returns the number of stored entries.
func (f *FakeStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Get implements storage.Store.
func (f *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok, nil
}

// Set implements storage.Store.
func (f *FakeStore) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	if strings.TrimSpace(key) == "" {
		return storage.ErrKeyRequired
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.Writes++
	return nil
}

// Remove implements storage.Store.
func (f *FakeStore) Remove(ctx context.Context, key string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	f.Writes++
	return nil
}

// Keys implements storage.Store.
func (f *FakeStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if f.KeysErr != nil {
		return nil, f.KeysErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var keys []string
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements storage.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
