package commands

import (
	"context"
	"errors"
	"slices"
	"testing"

	"ltask/internal/persist"
	"ltask/internal/session"
	"ltask/internal/testutil"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if len(ref.Rest) != 0 {
		t.Errorf("expected no rest, got %q", ref.Rest)
	}
}

func TestParseTaskRef_WithRest(t *testing.T) {
	ref, err := ParseTaskRef([]string{"12", "new", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 12 {
		t.Errorf("expected Num 12, got %d", ref.Num)
	}
	if !slices.Equal(ref.Rest, []string{"new", "text"}) {
		t.Errorf("expected rest [new text], got %q", ref.Rest)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	for _, arg := range []string{"a1", "-1", "1.5", "x", "١"} {
		_, err := ParseTaskRef([]string{arg})
		if err == nil {
			t.Errorf("%q: expected error", arg)
			continue
		}
		want := "invalid task reference: " + arg
		if err.Error() != want {
			t.Errorf("%q: expected %q, got %q", arg, want, err.Error())
		}
	}
}

func TestParseTaskRef_NoArgs(t *testing.T) {
	_, err := ParseTaskRef([]string{})
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Zero(t *testing.T) {
	ref, err := ParseTaskRef([]string{"0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestLookupActive_MapsFilteredRow(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_home", `["a","bob","cab"]`)
	sess := session.Open(context.Background(), persist.New(store), "home", nil)

	e, err := lookupActive(sess, "b", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Index != 2 || e.Text != "cab" {
		t.Errorf("expected entry (2, cab), got %+v", e)
	}

	if _, err := lookupActive(sess, "b", 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := lookupActive(sess, "", 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for 0, got %v", err)
	}
}
