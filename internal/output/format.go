// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/task"
)

const (
	// ProgressWidth is the number of cells in the progress bar.
	ProgressWidth = 20

	// dueLayout matches the short month/day style of the task list.
	dueLayout = "Jan 2"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] ! {TEXT}  ({CATEGORY}, due {Mon D})\n"
// The priority mark and due date are omitted when unset.
func FormatTask(w io.Writer, num int, t task.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	mark := ""
	if t.Priority {
		mark = "! "
	}
	meta := string(t.Category)
	if t.DueDate != nil {
		meta += ", due " + t.DueDate.Time().Format(dueLayout)
	}
	fmt.Fprintf(w, "%4d  %s %s%s  (%s)\n", num, box, mark, normalizeText(t.Text), meta)
}

// FormatStats formats the statistics block and progress bar.
func FormatStats(w io.Writer, st task.Stats) {
	fmt.Fprintf(w, "total      %d\n", st.Total)
	fmt.Fprintf(w, "completed  %d\n", st.Completed)
	fmt.Fprintf(w, "pending    %d\n", st.Pending)
	fmt.Fprintf(w, "%s %d%% Complete\n", ProgressBar(st.PercentComplete), st.PercentComplete)
}

// ProgressBar renders percent (clamped to 0..100) as a fixed-width bar.
func ProgressBar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * ProgressWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", ProgressWidth-filled) + "]"
}

// normalizeText normalizes task text for single-line display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
