// Package report renders a hydrated stock opname session into its two
// export encodings: a BOM-prefixed CSV document for spreadsheet tools and
// a plain-text narrative document for printing. Both renderers are pure
// functions over the session detail; fetching and existence checks happen
// in the store.
package report

import "time"

// timestampLayout is the export timestamp format: an ISO-8601 instant with
// the date/time separator replaced by a space and truncated to seconds,
// always in UTC with no timezone suffix.
const timestampLayout = "2006-01-02 15:04:05"

// notCompleted is rendered in place of a missing completion timestamp.
const notCompleted = "Not completed"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatCompletedAt(t *time.Time) string {
	if t == nil {
		return notCompleted
	}
	return formatTimestamp(*t)
}
