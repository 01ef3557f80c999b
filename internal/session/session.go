// Package session binds a task list store to its persistence adapter.
//
// The store itself never touches storage. A Session forwards each operation
// to the store and, when the returned Change says the active sequence
// changed, writes the post-mutation sequence through the adapter.
package session

import (
	"context"
	"io"
	"log"

	"ltask/internal/persist"
	"ltask/internal/tasklist"
)

// Persister is the subset of persist.Adapter a Session needs.
type Persister interface {
	Load(ctx context.Context, listID string) ([]string, error)
	Save(ctx context.Context, listID string, seq []string) error
	Lists(ctx context.Context) ([]string, error)
}

var _ Persister = (*persist.Adapter)(nil)

// Session is one list identifier's live state.
// It is not safe for concurrent use.
type Session struct {
	store  *tasklist.Store
	p      Persister
	logger *log.Logger
	err    error
}

// Open creates a session for listID and hydrates it from p.
// A load failure leaves the list empty; it is logged and reported by Err.
func Open(ctx context.Context, p Persister, listID string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		store:  tasklist.New(),
		p:      p,
		logger: logger,
	}
	s.hydrate(ctx, listID)
	return s
}

// SwitchList re-hydrates the session for listID, discarding all in-memory
// state. Switching to the current list does nothing. If the load fails the
// current list stays in place and the error is returned.
func (s *Session) SwitchList(ctx context.Context, listID string) error {
	if listID == s.store.ListID() {
		return nil
	}
	seq, err := s.p.Load(ctx, listID)
	if err != nil {
		s.logger.Printf("load list %q: %v", listID, err)
		return err
	}
	s.err = nil
	s.initialize(listID, seq)
	return nil
}

func (s *Session) hydrate(ctx context.Context, listID string) {
	seq, err := s.p.Load(ctx, listID)
	if err != nil {
		s.logger.Printf("load list %q: %v", listID, err)
		s.err = err
		seq = nil
	}
	s.initialize(listID, seq)
}

func (s *Session) initialize(listID string, seq []string) {
	s.store.Initialize(listID, seq)
	s.logger.Printf("loaded list %q (%d active)", listID, len(s.store.Active()))
}

// Err returns the most recent persistence failure, or nil once a later
// load or save succeeded.
func (s *Session) Err() error { return s.err }

// ListID returns the current list identifier.
func (s *Session) ListID() string { return s.store.ListID() }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() tasklist.Snapshot { return s.store.Snapshot() }

// Active returns a copy of the active sequence.
func (s *Session) Active() []string { return s.store.Active() }

// Resolved returns a copy of the resolved sequence.
func (s *Session) Resolved() []string { return s.store.Resolved() }

// Edit returns the edit in progress, or nil.
func (s *Session) Edit() *tasklist.EditState { return s.store.Edit() }

// Filter returns the filter state.
func (s *Session) Filter() tasklist.FilterState { return s.store.Filter() }

// NewTask returns the pending new-task input.
func (s *Session) NewTask() string { return s.store.NewTask() }

// FilteredActive returns the filtered view of the active sequence.
func (s *Session) FilteredActive() []tasklist.Entry { return s.store.FilteredActive() }

// FilteredResolved returns the filtered view of the resolved sequence.
func (s *Session) FilteredResolved() []tasklist.Entry { return s.store.FilteredResolved() }

// Lists returns the identifiers of all stored lists.
func (s *Session) Lists(ctx context.Context) ([]string, error) {
	return s.p.Lists(ctx)
}
