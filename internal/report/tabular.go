package report

import (
	"strconv"
	"strings"

	"github.com/awicaksono/opname/internal/model"
)

// bom is prepended so spreadsheet applications that default to legacy
// encodings detect UTF-8.
const bom = "\uFEFF"

// tabularHeader is the fixed column order of the tabular export.
var tabularHeader = []string{
	"SKU",
	"Lot Number",
	"Quantity",
	"Scanned At",
	"Location",
	"Location Code",
	"Session Name",
	"User Name",
	"Session Status",
	"Started At",
	"Completed At",
}

// RenderTabular renders a session as a CSV document with one row per item
// in scan order. A session with no items produces just the header row.
func RenderTabular(detail *model.SessionDetail) []byte {
	rows := make([]string, 0, len(detail.Items)+1)
	rows = append(rows, strings.Join(tabularHeader, ","))

	startedAt := formatTimestamp(detail.StartedAt)
	completedAt := formatCompletedAt(detail.CompletedAt)

	for _, item := range detail.Items {
		fields := []string{
			escapeField(item.SKU),
			escapeField(item.LotNumber),
			escapeField(strconv.Itoa(item.Quantity)),
			escapeField(formatTimestamp(item.ScannedAt)),
			escapeField(detail.Location.Name),
			escapeField(detail.Location.Code),
			escapeField(detail.SessionName),
			escapeField(detail.User.FullName),
			escapeField(detail.Status),
			escapeField(startedAt),
			escapeField(completedAt),
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	return []byte(bom + strings.Join(rows, "\n"))
}

// escapeField quotes a field only when it contains a comma, a double
// quote, or a newline. Inner double quotes are doubled.
func escapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
