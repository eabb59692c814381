package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/awicaksono/opname/internal/model"
)

var (
	reportStart = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	reportEnd   = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
)

func testDetail() *model.SessionDetail {
	return &model.SessionDetail{
		Session: model.Session{
			ID:          7,
			SessionName: "March count",
			Status:      model.SessionStatusActive,
			StartedAt:   reportStart,
		},
		Location: model.Location{
			Name:        "Warehouse A",
			Code:        "WH-A",
			Description: "Main warehouse",
		},
		User: model.User{
			Username:     "alice",
			Email:        "alice@example.com",
			FullName:     "Alice Smith",
			PasswordHash: "secret-hash",
		},
	}
}

func withItems(detail *model.SessionDetail) *model.SessionDetail {
	detail.Items = []model.Item{
		{SKU: "SKU001", LotNumber: "LOT001", Quantity: 10, ScannedAt: reportStart.Add(5 * time.Minute)},
		{SKU: "SKU002", LotNumber: "LOT002", Quantity: 25, ScannedAt: reportStart.Add(10 * time.Minute)},
	}
	return detail
}

func TestTabularEmptySession(t *testing.T) {
	doc := string(RenderTabular(testDetail()))

	if !strings.HasPrefix(doc, "\uFEFF") {
		t.Error("expected document to start with UTF-8 BOM")
	}

	body := strings.TrimPrefix(doc, "\uFEFF")
	lines := strings.Split(body, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 line for empty session, got %d", len(lines))
	}
	want := "SKU,Lot Number,Quantity,Scanned At,Location,Location Code,Session Name,User Name,Session Status,Started At,Completed At"
	if lines[0] != want {
		t.Errorf("header mismatch:\n got %q\nwant %q", lines[0], want)
	}
}

func TestTabularRows(t *testing.T) {
	doc := string(RenderTabular(withItems(testDetail())))
	body := strings.TrimPrefix(doc, "\uFEFF")
	lines := strings.Split(body, "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d lines", len(lines))
	}

	want1 := "SKU001,LOT001,10,2024-03-15 10:35:00,Warehouse A,WH-A,March count,Alice Smith,active,2024-03-15 10:30:00,Not completed"
	want2 := "SKU002,LOT002,25,2024-03-15 10:40:00,Warehouse A,WH-A,March count,Alice Smith,active,2024-03-15 10:30:00,Not completed"
	if lines[1] != want1 {
		t.Errorf("row 1 mismatch:\n got %q\nwant %q", lines[1], want1)
	}
	if lines[2] != want2 {
		t.Errorf("row 2 mismatch:\n got %q\nwant %q", lines[2], want2)
	}
}

func TestTabularCompletedAt(t *testing.T) {
	detail := testDetail()
	detail.Status = model.SessionStatusCompleted
	completed := reportEnd
	detail.CompletedAt = &completed
	detail.Items = []model.Item{{SKU: "SKU001", LotNumber: "L", Quantity: 1, ScannedAt: reportStart}}

	doc := string(RenderTabular(detail))
	if !strings.Contains(doc, ",completed,2024-03-15 10:30:00,2024-03-15 12:00:00") {
		t.Errorf("expected completed timestamp in row, got:\n%s", doc)
	}
	if strings.Contains(doc, "Not completed") {
		t.Error("completed session must not render 'Not completed'")
	}
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has"quote`, `"has""quote"`},
		{"has\nnewline", "\"has\nnewline\""},
		{`both,"of them`, `"both,""of them"`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := escapeField(tt.in); got != tt.want {
			t.Errorf("escapeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// A compliant CSV parser must recover the original field values exactly.
func TestTabularEscapingRoundTrip(t *testing.T) {
	detail := testDetail()
	detail.SessionName = "tricky, \"name\"\nwith newline"
	detail.Items = []model.Item{
		{SKU: `SKU,001`, LotNumber: `LOT"1"`, Quantity: 3, ScannedAt: reportStart},
	}

	body := strings.TrimPrefix(string(RenderTabular(detail)), "\uFEFF")
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parsing rendered CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	row := records[1]
	if row[0] != `SKU,001` {
		t.Errorf("SKU round-trip: got %q", row[0])
	}
	if row[1] != `LOT"1"` {
		t.Errorf("lot round-trip: got %q", row[1])
	}
	if row[6] != detail.SessionName {
		t.Errorf("session name round-trip: got %q", row[6])
	}
}

func TestNarrativeEmptySession(t *testing.T) {
	doc := string(RenderNarrative(testDetail(), reportEnd))

	for _, want := range []string{
		"STOCK OPNAME REPORT",
		"- Session Name: March count",
		"- Session ID: 7",
		"- Status: ACTIVE",
		"- Started: 2024-03-15 10:30:00",
		"- Completed: Not completed",
		"- Location Name: Warehouse A",
		"- Location Code: WH-A",
		"- Description: Main warehouse",
		"- Full Name: Alice Smith",
		"- Username: alice",
		"- Email: alice@example.com",
		"- Total Items Scanned: 0",
		"- Total Quantity: 0",
		"[NO SIGNATURE]",
		"No items found",
		"Report Generated: 2024-03-15 12:00:00",
		"This is a digitally generated report for stock opname session 7.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("narrative missing %q:\n%s", want, doc)
		}
	}
}

func TestNarrativeItemsAndTotals(t *testing.T) {
	detail := withItems(testDetail())
	doc := string(RenderNarrative(detail, reportEnd))

	for _, want := range []string{
		"- Total Items Scanned: 2",
		"- Total Quantity: 35",
		"1. SKU: SKU001 | Lot: LOT001 | Qty: 10 | Scanned: 2024-03-15 10:35:00",
		"2. SKU: SKU002 | Lot: LOT002 | Qty: 25 | Scanned: 2024-03-15 10:40:00",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("narrative missing %q", want)
		}
	}
	if strings.Contains(doc, "No items found") {
		t.Error("non-empty session must not render 'No items found'")
	}
}

func TestNarrativeSignatureAndFallbacks(t *testing.T) {
	detail := testDetail()
	detail.Location.Description = ""
	sig := "data:image/png;base64,abc"
	detail.SignatureData = &sig
	detail.Status = model.SessionStatusCancelled

	doc := string(RenderNarrative(detail, reportEnd))

	if !strings.Contains(doc, "- Description: N/A") {
		t.Error("expected N/A for missing description")
	}
	if !strings.Contains(doc, "[SIGNATURE DATA PRESENT]") {
		t.Error("expected signature presence marker")
	}
	if !strings.Contains(doc, "- Status: CANCELLED") {
		t.Error("expected upper-cased status")
	}
	// The report never leaks credential material.
	if strings.Contains(doc, "secret-hash") {
		t.Error("narrative must not contain password material")
	}
}
