package session

import (
	"context"

	"ltask/internal/tasklist"
)

// SetNewTask replaces the pending new-task input.
func (s *Session) SetNewTask(text string) {
	s.store.SetNewTask(text)
}

// SubmitNewTask adds the pending new-task input.
func (s *Session) SubmitNewTask(ctx context.Context) tasklist.Change {
	return s.commit(ctx, s.store.SubmitNewTask())
}

// AddTask appends text to the active sequence.
func (s *Session) AddTask(ctx context.Context, text string) tasklist.Change {
	return s.commit(ctx, s.store.AddTask(text))
}

// DeleteTask removes the active task at index.
func (s *Session) DeleteTask(ctx context.Context, index int) tasklist.Change {
	return s.commit(ctx, s.store.DeleteTask(index))
}

// ResolveTask moves the active task at index to the resolved sequence.
func (s *Session) ResolveTask(ctx context.Context, index int) tasklist.Change {
	return s.commit(ctx, s.store.ResolveTask(index))
}

// UnresolveTask moves the resolved task at index back to the active
// sequence.
func (s *Session) UnresolveTask(ctx context.Context, index int) tasklist.Change {
	return s.commit(ctx, s.store.UnresolveTask(index))
}

// StartEditing opens an edit on the active task at index.
func (s *Session) StartEditing(index int) tasklist.Change {
	return s.store.StartEditing(index)
}

// UpdateEditDraft replaces the edit draft.
func (s *Session) UpdateEditDraft(text string) tasklist.Change {
	return s.store.UpdateEditDraft(text)
}

// SaveEdit writes the edit draft back.
func (s *Session) SaveEdit(ctx context.Context) tasklist.Change {
	return s.commit(ctx, s.store.SaveEdit())
}

// CancelEdit discards the edit in progress.
func (s *Session) CancelEdit() tasklist.Change {
	return s.store.CancelEdit()
}

// SetFilter replaces the filter query.
func (s *Session) SetFilter(query string) tasklist.Change {
	return s.store.SetFilter(query)
}

// ToggleFilterVisibility flips whether the filter input is shown.
func (s *Session) ToggleFilterVisibility() tasklist.Change {
	return s.store.ToggleFilterVisibility()
}

// commit persists the active sequence if ch changed it.
// A failed write is logged and kept for Err; memory is not rolled back.
func (s *Session) commit(ctx context.Context, ch tasklist.Change) tasklist.Change {
	if !ch.ActiveChanged {
		return ch
	}
	listID := s.store.ListID()
	if err := s.p.Save(ctx, listID, s.store.Active()); err != nil {
		s.logger.Printf("save list %q: %v", listID, err)
		s.err = err
		return ch
	}
	s.err = nil
	return ch
}
