package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"12345", true},
		{"123456", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"", true},
		{"no-at-sign", true},
		{"@example.com", true},
		{"trailing@", true},
		{"alice@example.com", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestValidateSessionStatus(t *testing.T) {
	for _, status := range []string{SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled} {
		if err := ValidateSessionStatus(status); err != nil {
			t.Errorf("ValidateSessionStatus(%q) = %v, want nil", status, err)
		}
	}
	if err := ValidateSessionStatus("paused"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestOptionalTriState(t *testing.T) {
	type patch struct {
		Signature Optional[string] `json:"signature"`
	}

	// Absent field: not set.
	var p patch
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Signature.Set {
		t.Error("expected absent field to be unset")
	}

	// Explicit null: set but not valid.
	p = patch{}
	if err := json.Unmarshal([]byte(`{"signature": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Signature.Set || p.Signature.Valid {
		t.Errorf("expected set+invalid for null, got set=%v valid=%v", p.Signature.Set, p.Signature.Valid)
	}

	// Value: set and valid.
	p = patch{}
	if err := json.Unmarshal([]byte(`{"signature": "abc"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Signature.Set || !p.Signature.Valid || p.Signature.Value != "abc" {
		t.Errorf("expected set+valid 'abc', got %+v", p.Signature)
	}
}

func TestSessionPatchDecoding(t *testing.T) {
	body := `{"status": "completed", "completed_at": "2024-03-15T10:30:00Z"}`
	var patch SessionPatch
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !patch.Status.Set || patch.Status.Value != SessionStatusCompleted {
		t.Errorf("expected status 'completed', got %+v", patch.Status)
	}
	if patch.SignatureData.Set {
		t.Error("expected signature_data to be unset")
	}
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if !patch.CompletedAt.Valid || !patch.CompletedAt.Value.Equal(want) {
		t.Errorf("expected completed_at %v, got %+v", want, patch.CompletedAt)
	}
}

func TestTotalQuantity(t *testing.T) {
	detail := SessionDetail{
		Items: []Item{
			{Quantity: 10},
			{Quantity: 25},
			{Quantity: 0},
		},
	}
	if got := detail.TotalQuantity(); got != 35 {
		t.Errorf("expected total quantity 35, got %d", got)
	}
}
