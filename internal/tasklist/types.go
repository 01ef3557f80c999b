// Package tasklist implements the in-memory task list state machine.
package tasklist

// EditState is the single edit in flight.
type EditState struct {
	Index int    // index into the active sequence
	Draft string // draft text, kept verbatim until saved
}

// FilterState holds the search query and whether its input is shown.
// Visibility does not switch filtering off.
type FilterState struct {
	Query   string
	Visible bool
}

// Entry is one row of a filtered view.
// Index is the position in the underlying sequence, not in the view.
type Entry struct {
	Index int
	Text  string
}

// Change reports what a mutation did.
type Change struct {
	// Applied is false when the call was rejected (empty text, bad index,
	// no edit in progress).
	Applied bool

	// ActiveChanged is true when the active sequence was modified and
	// needs to be persisted.
	ActiveChanged bool
}

var (
	unchanged     = Change{}
	applied       = Change{Applied: true}
	activeChanged = Change{Applied: true, ActiveChanged: true}
)

// Snapshot is a copy of the whole store state.
type Snapshot struct {
	ListID   string
	Active   []string
	Resolved []string
	Edit     *EditState
	Filter   FilterState
	NewTask  string
}
