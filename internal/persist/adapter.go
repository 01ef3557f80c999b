// Package persist mirrors a task list's active sequence into a key-value
// store, one entry per list identifier.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"ltask/internal/storage"
)

// KeyPrefix namespaces task list entries in the store.
const KeyPrefix = "tasks_"

// Key returns the storage key for a list identifier.
func Key(listID string) string {
	return KeyPrefix + listID
}

// Adapter loads and saves task sequences.
type Adapter struct {
	store storage.Store
}

// New creates an adapter over store.
func New(store storage.Store) *Adapter {
	return &Adapter{store: store}
}

// Load returns the stored sequence for listID.
// A missing entry or one that is not a JSON array of strings loads as an
// empty sequence. Only storage failures are returned as errors.
func (a *Adapter) Load(ctx context.Context, listID string) ([]string, error) {
	raw, ok, err := a.store.Get(ctx, Key(listID))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", listID, err)
	}
	if !ok {
		return []string{}, nil
	}
	return Decode(raw), nil
}

// Save stores seq for listID, or removes the entry when seq is empty.
func (a *Adapter) Save(ctx context.Context, listID string, seq []string) error {
	key := Key(listID)
	if len(seq) == 0 {
		if err := a.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", listID, err)
		}
		return nil
	}

	raw, err := Encode(seq)
	if err != nil {
		return fmt.Errorf("encode %s: %w", listID, err)
	}
	if err := a.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", listID, err)
	}
	return nil
}

// Lists returns the identifiers of lists with a stored entry, sorted.
func (a *Adapter) Lists(ctx context.Context) ([]string, error) {
	keys, err := a.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if id := strings.TrimPrefix(k, KeyPrefix); id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Encode serializes a sequence as a JSON array of strings.
func Encode(seq []string) (string, error) {
	if seq == nil {
		seq = []string{}
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a JSON array of strings.
// Anything else, including null, decodes to an empty sequence.
func Decode(raw string) []string {
	var seq []string
	if err := json.Unmarshal([]byte(raw), &seq); err != nil || seq == nil {
		return []string{}
	}
	return seq
}
