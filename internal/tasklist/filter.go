package tasklist

import "strings"

// SetFilter replaces the filter query.
func (s *Store) SetFilter(query string) Change {
	s.filter.Query = query
	return applied
}

// ToggleFilterVisibility flips whether the filter input is shown.
func (s *Store) ToggleFilterVisibility() Change {
	s.filter.Visible = !s.filter.Visible
	return applied
}

// FilteredActive returns the active tasks matching the filter query.
func (s *Store) FilteredActive() []Entry {
	return filterEntries(s.active, s.filter.Query)
}

// FilteredResolved returns the resolved tasks matching the filter query.
func (s *Store) FilteredResolved() []Entry {
	return filterEntries(s.resolved, s.filter.Query)
}

// Matches reports whether text contains query, ignoring case.
// An empty query matches everything.
func Matches(text, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

func filterEntries(seq []string, query string) []Entry {
	out := make([]Entry, 0, len(seq))
	for i, t := range seq {
		if Matches(t, query) {
			out = append(out, Entry{Index: i, Text: t})
		}
	}
	return out
}
