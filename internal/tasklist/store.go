package tasklist

import (
	"slices"
	"strings"
)

// Store owns the active and resolved sequences plus the transient
// edit, filter and new-task input state.
// It performs no I/O: callers persist Active() when a Change says so.
type Store struct {
	listID   string
	active   []string
	resolved []string
	edit     *EditState
	filter   FilterState
	newTask  string
}

// New creates an empty store not yet bound to a list.
func New() *Store {
	return &Store{}
}

// Initialize binds the store to listID and replaces the active sequence
// with a copy of loaded, as stored. Everything else is reset; nothing is
// merged.
func (s *Store) Initialize(listID string, loaded []string) {
	*s = Store{
		listID: listID,
		active: slices.Clone(loaded),
	}
}

// ListID returns the list the store was initialized for.
func (s *Store) ListID() string { return s.listID }

// Active returns a copy of the active sequence.
func (s *Store) Active() []string { return slices.Clone(s.active) }

// Resolved returns a copy of the resolved sequence.
func (s *Store) Resolved() []string { return slices.Clone(s.resolved) }

// Edit returns the current edit, or nil.
func (s *Store) Edit() *EditState {
	if s.edit == nil {
		return nil
	}
	e := *s.edit
	return &e
}

// Filter returns the filter state.
func (s *Store) Filter() FilterState { return s.filter }

// NewTask returns the pending new-task input.
func (s *Store) NewTask() string { return s.newTask }

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		ListID:   s.listID,
		Active:   s.Active(),
		Resolved: s.Resolved(),
		Edit:     s.Edit(),
		Filter:   s.filter,
		NewTask:  s.newTask,
	}
}

// SetNewTask replaces the pending new-task input.
func (s *Store) SetNewTask(text string) {
	s.newTask = text
}

// SubmitNewTask adds the pending new-task input.
func (s *Store) SubmitNewTask() Change {
	return s.AddTask(s.newTask)
}

// AddTask appends the trimmed text to the active sequence and clears the
// pending input. Blank text is ignored.
func (s *Store) AddTask(text string) Change {
	text = strings.TrimSpace(text)
	if text == "" {
		return unchanged
	}
	s.active = append(s.active, text)
	s.newTask = ""
	return activeChanged
}

// DeleteTask removes the active task at index.
func (s *Store) DeleteTask(index int) Change {
	if !inRange(index, s.active) {
		return unchanged
	}
	s.active = slices.Delete(s.active, index, index+1)

	// Keep the edit pointing at the same task.
	if s.edit != nil {
		switch {
		case s.edit.Index == index:
			s.edit = nil
		case s.edit.Index > index:
			s.edit.Index--
		}
	}
	return activeChanged
}

// ResolveTask moves the active task at index to the end of the resolved
// sequence.
func (s *Store) ResolveTask(index int) Change {
	if !inRange(index, s.active) {
		return unchanged
	}
	s.resolved = append(s.resolved, s.active[index])
	return s.DeleteTask(index)
}

// UnresolveTask moves the resolved task at index back to the end of the
// active sequence.
func (s *Store) UnresolveTask(index int) Change {
	if !inRange(index, s.resolved) {
		return unchanged
	}
	s.active = append(s.active, s.resolved[index])
	s.resolved = slices.Delete(s.resolved, index, index+1)
	return activeChanged
}

// StartEditing opens an edit on the active task at index, replacing any
// edit already in progress.
func (s *Store) StartEditing(index int) Change {
	if !inRange(index, s.active) {
		return unchanged
	}
	s.edit = &EditState{Index: index, Draft: s.active[index]}
	return applied
}

// UpdateEditDraft replaces the draft verbatim.
func (s *Store) UpdateEditDraft(text string) Change {
	if s.edit == nil {
		return unchanged
	}
	s.edit.Draft = text
	return applied
}

// SaveEdit writes the trimmed draft back and closes the edit.
// A blank draft is rejected and the edit stays open.
func (s *Store) SaveEdit() Change {
	if s.edit == nil {
		return unchanged
	}
	text := strings.TrimSpace(s.edit.Draft)
	if text == "" {
		return unchanged
	}
	if !inRange(s.edit.Index, s.active) {
		s.edit = nil
		return unchanged
	}
	s.active[s.edit.Index] = text
	s.edit = nil
	return activeChanged
}

// CancelEdit discards the edit in progress, if any.
func (s *Store) CancelEdit() Change {
	if s.edit == nil {
		return unchanged
	}
	s.edit = nil
	return applied
}

func inRange(index int, seq []string) bool {
	return index >= 0 && index < len(seq)
}
