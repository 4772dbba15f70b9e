// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/policy"
	"taskflow/internal/service"
)

const (
	// SectionSeparator is the separator line for day-view sections.
	SectionSeparator = "------------"
)

// FormatDayHeader writes the header for a day view.
func FormatDayHeader(w io.Writer, day string, used int) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintf(w, "%s  (%d/%d slots used)\n", day, used, policy.DayLimit)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatBucketHeader writes a bucket section header within a day view.
func FormatBucketHeader(w io.Writer, bucket service.Bucket) {
	fmt.Fprintf(w, "%s:\n", bucketLabel(bucket))
}

// FormatTask formats one numbered task line.
// Format: "{N:>4}  [x] {TITLE}\n" with a space in the box for open tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, box, normalizeTitle(task.Title))
}

// FormatNote formats one numbered scratchpad line.
func FormatNote(w io.Writer, num int, item service.ScratchpadItem) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(item.Title))
}

func bucketLabel(b service.Bucket) string {
	switch b {
	case service.BucketWork:
		return "Work"
	case service.BucketPersonal:
		return "Personal"
	default:
		return string(b)
	}
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
