package session_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"testing"

	"ltask/internal/persist"
	"ltask/internal/session"
	"ltask/internal/testutil"
)

func openSession(t *testing.T, store *testutil.FakeStore, listID string) *session.Session {
	t.Helper()
	return session.Open(context.Background(), persist.New(store), listID, nil)
}

func storedSeq(t *testing.T, store *testutil.FakeStore, listID string) ([]string, bool) {
	t.Helper()
	raw, ok := store.Raw(persist.Key(listID))
	if !ok {
		return nil, false
	}
	return persist.Decode(raw), true
}

func TestOpen_Hydrates(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a","b"]`)

	s := openSession(t, store, "home")

	if !slices.Equal(s.Active(), []string{"a", "b"}) {
		t.Errorf("expected [a b], got %q", s.Active())
	}
	if store.Writes != 0 {
		t.Errorf("expected no writes on load, got %d", store.Writes)
	}
	if s.Err() != nil {
		t.Errorf("unexpected error %v", s.Err())
	}
}

func TestOpen_MissingAndCorruptAreEmpty(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_bad", `{not json`)

	for _, id := range []string{"missing", "bad"} {
		s := openSession(t, store, id)
		if len(s.Active()) != 0 {
			t.Errorf("%s: expected empty list, got %q", id, s.Active())
		}
		if s.Err() != nil {
			t.Errorf("%s: expected no error, got %v", id, s.Err())
		}
	}
}

// Hydration keeps stored entries as they are, so storage and the active
// sequence agree without a write.
func TestOpen_StoredEntriesKeptVerbatim(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `[" a ","","b"]`)
	var logs bytes.Buffer
	ctx := context.Background()

	s := session.Open(ctx, persist.New(store), "home", log.New(&logs, "", 0))

	want := []string{" a ", "", "b"}
	if !slices.Equal(s.Active(), want) {
		t.Fatalf("expected %q, got %q", want, s.Active())
	}
	if !strings.Contains(logs.String(), `loaded list "home" (3 active)`) {
		t.Errorf("log %q", logs.String())
	}

	s.SetFilter("b")
	s.StartEditing(0)
	s.CancelEdit()
	if store.Writes != 0 {
		t.Errorf("expected no writes, got %d", store.Writes)
	}
	assertStored(t, store, "home", want)

	s.AddTask(ctx, "c")
	assertStored(t, store, "home", []string{" a ", "", "b", "c"})
}

func TestMutationsPersistActiveSequence(t *testing.T) {
	store := testutil.NewFakeStore()
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.AddTask(ctx, "a")
	s.AddTask(ctx, " b ")
	s.AddTask(ctx, "c")
	assertStored(t, store, "home", []string{"a", "b", "c"})

	s.ResolveTask(ctx, 0)
	assertStored(t, store, "home", []string{"b", "c"})

	s.UnresolveTask(ctx, 0)
	assertStored(t, store, "home", []string{"b", "c", "a"})

	s.StartEditing(1)
	s.UpdateEditDraft("cc")
	s.SaveEdit(ctx)
	assertStored(t, store, "home", []string{"b", "cc", "a"})

	s.DeleteTask(ctx, 0)
	assertStored(t, store, "home", []string{"cc", "a"})
}

func TestNonActiveChangesDoNotWrite(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a"]`)
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.AddTask(ctx, "   ")
	s.DeleteTask(ctx, 5)
	s.StartEditing(0)
	s.UpdateEditDraft("  ")
	s.SaveEdit(ctx)
	s.CancelEdit()
	s.SetFilter("x")
	s.ToggleFilterVisibility()
	s.SetNewTask("draft")

	if store.Writes != 0 {
		t.Errorf("expected no writes, got %d", store.Writes)
	}
}

func TestEmptyActiveRemovesEntry(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["buy milk"]`)
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.ResolveTask(ctx, 0)

	if _, ok := store.Raw("tasks_home"); ok {
		t.Error("expected stored entry removed")
	}
	if !slices.Equal(s.Resolved(), []string{"buy milk"}) {
		t.Errorf("expected resolved [buy milk], got %q", s.Resolved())
	}
}

func TestResolvedIsNotPersisted(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a","b"]`)
	s := openSession(t, store, "home")
	s.ResolveTask(context.Background(), 0)

	reopened := openSession(t, store, "home")
	if !slices.Equal(reopened.Active(), []string{"b"}) {
		t.Errorf("expected [b], got %q", reopened.Active())
	}
	if len(reopened.Resolved()) != 0 {
		t.Errorf("expected no resolved tasks after reload, got %q", reopened.Resolved())
	}
}

func TestSwitchList_DiscardsState(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a","b"]`)
	store.Put("tasks_work", `["w"]`)
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.ResolveTask(ctx, 0)
	s.SetFilter("b")
	if err := s.SwitchList(ctx, "work"); err != nil {
		t.Fatalf("switch: %v", err)
	}

	if s.ListID() != "work" {
		t.Errorf("expected list work, got %q", s.ListID())
	}
	if !slices.Equal(s.Active(), []string{"w"}) {
		t.Errorf("expected [w], got %q", s.Active())
	}
	if len(s.Resolved()) != 0 || s.Filter().Query != "" {
		t.Errorf("expected reset state, got %+v", s.Snapshot())
	}

	s.AddTask(ctx, "x")
	assertStored(t, store, "work", []string{"w", "x"})
	assertStored(t, store, "home", []string{"b"})
}

func TestSwitchList_SameListKeepsState(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a"]`)
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.ResolveTask(ctx, 0)
	s.SwitchList(ctx, "home")

	if !slices.Equal(s.Resolved(), []string{"a"}) {
		t.Errorf("expected resolved kept, got %q", s.Resolved())
	}
}

// A failed switch must not leave an empty list that the next write would
// store over the real one.
func TestSwitchList_LoadFailureKeepsCurrent(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a","b"]`)
	store.Put("tasks_work", `["w"]`)
	s := openSession(t, store, "home")
	ctx := context.Background()
	s.ResolveTask(ctx, 0)

	store.GetErr = errors.New("locked")
	if err := s.SwitchList(ctx, "work"); !errors.Is(err, store.GetErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	if s.ListID() != "home" {
		t.Errorf("expected list home, got %q", s.ListID())
	}
	if !slices.Equal(s.Active(), []string{"b"}) || !slices.Equal(s.Resolved(), []string{"a"}) {
		t.Errorf("state changed: %+v", s.Snapshot())
	}
	if s.Err() != nil {
		t.Errorf("switch failure should not mark the current list, got %v", s.Err())
	}
	assertStored(t, store, "work", []string{"w"})
}

func TestSaveFailureKeepsMemoryAndReportsErr(t *testing.T) {
	store := testutil.NewFakeStore()
	var logBuf bytes.Buffer
	logger := log.New(&logBuf, "", 0)
	s := session.Open(context.Background(), persist.New(store), "home", logger)
	ctx := context.Background()

	store.SetErr = errors.New("quota exceeded")
	ch := s.AddTask(ctx, "a")

	if !ch.ActiveChanged {
		t.Errorf("expected change reported, got %+v", ch)
	}
	if !slices.Equal(s.Active(), []string{"a"}) {
		t.Errorf("expected in-memory task kept, got %q", s.Active())
	}
	if !errors.Is(s.Err(), store.SetErr) {
		t.Errorf("expected save error, got %v", s.Err())
	}
	if !strings.Contains(logBuf.String(), "quota exceeded") {
		t.Errorf("expected failure logged, got %q", logBuf.String())
	}

	store.SetErr = nil
	s.AddTask(ctx, "b")
	if s.Err() != nil {
		t.Errorf("expected error cleared after successful save, got %v", s.Err())
	}
	assertStored(t, store, "home", []string{"a", "b"})
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a"]`)
	store.GetErr = errors.New("locked")

	s := openSession(t, store, "home")
	if len(s.Active()) != 0 {
		t.Errorf("expected empty list, got %q", s.Active())
	}
	if !errors.Is(s.Err(), store.GetErr) {
		t.Errorf("expected load error, got %v", s.Err())
	}
}

func TestSubmitNewTask(t *testing.T) {
	store := testutil.NewFakeStore()
	s := openSession(t, store, "home")

	s.SetNewTask("write report")
	s.SubmitNewTask(context.Background())

	assertStored(t, store, "home", []string{"write report"})
	if s.NewTask() != "" {
		t.Errorf("expected input cleared, got %q", s.NewTask())
	}
}

func TestLists(t *testing.T) {
	store := testutil.NewFakeStore()
	s := openSession(t, store, "home")
	ctx := context.Background()

	s.AddTask(ctx, "a")
	s.SwitchList(ctx, "errands")
	s.AddTask(ctx, "b")

	got, err := s.Lists(ctx)
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if !slices.Equal(got, []string{"errands", "home"}) {
		t.Errorf("expected [errands home], got %q", got)
	}
}

func assertStored(t *testing.T, store *testutil.FakeStore, listID string, want []string) {
	t.Helper()
	got, ok := storedSeq(t, store, listID)
	if !ok {
		t.Fatalf("expected stored entry for %s", listID)
	}
	if !slices.Equal(got, want) {
		t.Errorf("stored %s: expected %q, got %q", listID, want, got)
	}
}
