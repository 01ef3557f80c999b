package tasklist

import (
	"slices"
	"testing"
)

func TestFilteredActive_Scenario(t *testing.T) {
	s := newStore("a", "bob", "cab")
	s.SetFilter("b")

	got := s.FilteredActive()
	want := []Entry{{Index: 1, Text: "bob"}, {Index: 2, Text: "cab"}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	s := newStore("Buy MILK", "eggs")
	s.SetFilter("milk")
	assertSeq(t, "filtered", texts(s.FilteredActive()), []string{"Buy MILK"})

	s.SetFilter("EGG")
	assertSeq(t, "filtered", texts(s.FilteredActive()), []string{"eggs"})
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	s := newStore("a", "b")
	assertSeq(t, "filtered", texts(s.FilteredActive()), []string{"a", "b"})
}

func TestFilter_Idempotent(t *testing.T) {
	s := newStore("a", "bob", "cab")
	s.SetFilter("b")
	first := s.FilteredActive()
	s.SetFilter("b")
	if !slices.Equal(first, s.FilteredActive()) {
		t.Error("expected identical view after repeated filter")
	}
}

func TestFilteredResolved(t *testing.T) {
	s := newStore("apple", "banana", "cherry")
	s.ResolveTask(0)
	s.ResolveTask(0)
	s.SetFilter("AN")

	got := s.FilteredResolved()
	want := []Entry{{Index: 1, Text: "banana"}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFilter_DoesNotMutateSequences(t *testing.T) {
	s := newStore("a", "b")
	s.SetFilter("zzz")
	if len(s.FilteredActive()) != 0 {
		t.Error("expected empty view")
	}
	assertSeq(t, "active", s.Active(), []string{"a", "b"})
}

func TestFilter_AppliesWhenHidden(t *testing.T) {
	s := newStore("a", "b")
	s.SetFilter("a")
	if s.Filter().Visible {
		t.Fatal("expected hidden filter input by default")
	}
	assertSeq(t, "filtered", texts(s.FilteredActive()), []string{"a"})

	s.ToggleFilterVisibility()
	if !s.Filter().Visible {
		t.Error("expected visible after toggle")
	}
	s.ToggleFilterVisibility()
	if s.Filter().Visible {
		t.Error("expected hidden after second toggle")
	}
}

func TestFilteredEntry_MapsToTrueIndex(t *testing.T) {
	s := newStore("a", "bob", "cab")
	s.SetFilter("c")

	view := s.FilteredActive()
	if len(view) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(view))
	}
	s.ResolveTask(view[0].Index)
	assertSeq(t, "active", s.Active(), []string{"a", "bob"})
	assertSeq(t, "resolved", s.Resolved(), []string{"cab"})
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}
