package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/awicaksono/opname/internal/model"
)

func TestAddSessionItem(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "March count")

	clk.Advance(5 * time.Minute)
	item, err := AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", 10, "barcode-1")
	if err != nil {
		t.Fatalf("AddSessionItem: %v", err)
	}

	if item.SessionID != session.ID {
		t.Errorf("expected session_id %d, got %d", session.ID, item.SessionID)
	}
	if item.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", item.Quantity)
	}
	// The store stamps scan time from the clock, not the caller.
	if !item.ScannedAt.Equal(testStart.Add(5 * time.Minute)) {
		t.Errorf("expected scanned_at %v, got %v", testStart.Add(5*time.Minute), item.ScannedAt)
	}
}

func TestAddSessionItemZeroQuantity(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "March count")

	item, err := AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", 0, "barcode-1")
	if err != nil {
		t.Fatalf("AddSessionItem with zero quantity: %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", item.Quantity)
	}
}

func TestAddSessionItemNegativeQuantity(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "March count")

	_, err := AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", -1, "barcode-1")
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAddSessionItemMissingSession(t *testing.T) {
	database, clk, _, _ := testFixtures(t)

	_, err := AddSessionItem(context.Background(), database, clk, 999, "SKU001", "LOT001", 1, "barcode-1")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddSessionItemInactiveSession(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	for _, status := range []string{model.SessionStatusCompleted, model.SessionStatusCancelled} {
		session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "Count "+status)
		AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", 1, "barcode-1")

		UpdateSession(ctx, database, clk, session.ID, model.SessionPatch{
			Status: model.Some(status),
		})

		_, err := AddSessionItem(ctx, database, clk, session.ID, "SKU002", "LOT002", 2, "barcode-2")
		if !errors.Is(err, model.ErrInvalidState) {
			t.Errorf("status %s: expected ErrInvalidState, got %v", status, err)
		}

		// The rejected item must not be persisted.
		items, err := ListSessionItems(ctx, database, session.ID)
		if err != nil {
			t.Fatalf("ListSessionItems: %v", err)
		}
		if len(items) != 1 {
			t.Errorf("status %s: expected 1 item, got %d", status, len(items))
		}
	}
}

func TestListSessionItemsOrder(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "March count")

	AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", 10, "barcode-1")
	clk.Advance(time.Minute)
	AddSessionItem(ctx, database, clk, session.ID, "SKU002", "LOT002", 25, "barcode-2")
	// Same instant as the previous scan; insertion order must hold.
	AddSessionItem(ctx, database, clk, session.ID, "SKU003", "LOT003", 5, "barcode-3")

	items, err := ListSessionItems(ctx, database, session.ID)
	if err != nil {
		t.Fatalf("ListSessionItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"SKU001", "SKU002", "SKU003"} {
		if items[i].SKU != want {
			t.Errorf("position %d: expected %s, got %s", i, want, items[i].SKU)
		}
	}
}

func TestListSessionItemsMissingSession(t *testing.T) {
	database, _, _, _ := testFixtures(t)

	_, err := ListSessionItems(context.Background(), database, 999)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessionItemsIsolation(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	s1, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "Count 1")
	s2, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "Count 2")

	AddSessionItem(ctx, database, clk, s1.ID, "SKU001", "LOT001", 10, "barcode-1")
	AddSessionItem(ctx, database, clk, s2.ID, "SKU002", "LOT002", 25, "barcode-2")

	items, _ := ListSessionItems(ctx, database, s1.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].SKU != "SKU001" {
		t.Errorf("item from another session leaked: %+v", items[0])
	}
}

func TestGetSessionDetail(t *testing.T) {
	database, clk, location, user := testFixtures(t)
	ctx := context.Background()

	session, _ := CreateSession(ctx, database, clk, location.ID, user.ID, "March count")
	AddSessionItem(ctx, database, clk, session.ID, "SKU001", "LOT001", 10, "barcode-1")

	detail, err := GetSessionDetail(ctx, database, session.ID)
	if err != nil {
		t.Fatalf("GetSessionDetail: %v", err)
	}
	if detail.Location.ID != location.ID || detail.User.ID != user.ID {
		t.Errorf("expected hydrated location/user, got %+v / %+v", detail.Location, detail.User)
	}
	if len(detail.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(detail.Items))
	}

	if _, err := GetSessionDetail(ctx, database, 999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
