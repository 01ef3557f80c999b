package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"ltask/internal/session"
	"ltask/internal/tasklist"
)

// TaskRef is a parsed row reference.
type TaskRef struct {
	Num  int      // 1-based row number in the rendered (filtered) view
	Rest []string // arguments after the reference
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrOutOfRange indicates the row number is not in the current view.
var ErrOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses the leading row number from args.
// The number must be all ASCII digits; anything else is an invalid
// reference.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	return TaskRef{Num: num, Rest: args[1:]}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// lookupActive applies filter to the session and maps a 1-based row number
// of the filtered active view to its entry. The entry's Index is the true
// index to pass to the store.
func lookupActive(sess *session.Session, filter string, num int) (tasklist.Entry, error) {
	sess.SetFilter(filter)
	view := sess.FilteredActive()
	if num < 1 || num > len(view) {
		return tasklist.Entry{}, fmt.Errorf("%w: %d", ErrOutOfRange, num)
	}
	return view[num-1], nil
}
