package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/awicaksono/opname/internal/model"
)

// RenderNarrative renders a session as a human-readable text report.
// generatedAt is stamped into the footer; callers pass the clock's current
// instant so the output is deterministic under test.
func RenderNarrative(detail *model.SessionDetail, generatedAt time.Time) []byte {
	description := detail.Location.Description
	if description == "" {
		description = "N/A"
	}

	signature := "[NO SIGNATURE]"
	if detail.SignatureData != nil {
		signature = "[SIGNATURE DATA PRESENT]"
	}

	itemLines := make([]string, 0, len(detail.Items))
	for i, item := range detail.Items {
		itemLines = append(itemLines, fmt.Sprintf("%d. SKU: %s | Lot: %s | Qty: %d | Scanned: %s",
			i+1, item.SKU, item.LotNumber, item.Quantity, formatTimestamp(item.ScannedAt)))
	}
	itemized := strings.Join(itemLines, "\n")
	if itemized == "" {
		itemized = "No items found"
	}

	var b strings.Builder
	b.WriteString("STOCK OPNAME REPORT\n")
	b.WriteString("==================\n\n")

	b.WriteString("Session Information:\n")
	fmt.Fprintf(&b, "- Session Name: %s\n", detail.SessionName)
	fmt.Fprintf(&b, "- Session ID: %d\n", detail.ID)
	fmt.Fprintf(&b, "- Status: %s\n", strings.ToUpper(detail.Status))
	fmt.Fprintf(&b, "- Started: %s\n", formatTimestamp(detail.StartedAt))
	fmt.Fprintf(&b, "- Completed: %s\n\n", formatCompletedAt(detail.CompletedAt))

	b.WriteString("Location Information:\n")
	fmt.Fprintf(&b, "- Location Name: %s\n", detail.Location.Name)
	fmt.Fprintf(&b, "- Location Code: %s\n", detail.Location.Code)
	fmt.Fprintf(&b, "- Description: %s\n\n", description)

	b.WriteString("User Information:\n")
	fmt.Fprintf(&b, "- Full Name: %s\n", detail.User.FullName)
	fmt.Fprintf(&b, "- Username: %s\n", detail.User.Username)
	fmt.Fprintf(&b, "- Email: %s\n\n", detail.User.Email)

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "- Total Items Scanned: %d\n", len(detail.Items))
	fmt.Fprintf(&b, "- Total Quantity: %d\n\n", detail.TotalQuantity())

	b.WriteString("Electronic Signature:\n")
	b.WriteString(signature + "\n\n")

	b.WriteString("Itemized List:\n")
	b.WriteString(itemized + "\n\n")

	fmt.Fprintf(&b, "Report Generated: %s\n", formatTimestamp(generatedAt))
	b.WriteString("---\n")
	fmt.Fprintf(&b, "This is a digitally generated report for stock opname session %d.", detail.ID)

	return []byte(b.String())
}
