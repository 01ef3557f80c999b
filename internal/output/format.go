// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ltask/internal/tasklist"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"
)

// FormatTask formats an active task row.
// Format: "{N:>4}  {TEXT}\n" (4-wide right-aligned number, two spaces, text)
func FormatTask(w io.Writer, num int, text string) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeText(text))
}

// FormatEntries prints a filtered view numbered from 1.
// Numbers are view positions; Entry.Index is not shown.
func FormatEntries(w io.Writer, entries []tasklist.Entry) {
	for i, e := range entries {
		FormatTask(w, i+1, e.Text)
	}
}

// FormatSectionHeader formats a titled section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatListName formats a list identifier for the lists command.
func FormatListName(w io.Writer, listID string, isCurrent bool) {
	if isCurrent {
		listID += " [current]"
	}
	fmt.Fprintln(w, listID)
}

// normalizeText keeps a task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
