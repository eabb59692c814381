package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
)

// AddSessionItem appends a scanned item to a session. The scan timestamp
// is stamped from the clock, never taken from the caller.
//
// Returns model.ErrValidation for a negative quantity (zero is accepted),
// model.ErrNotFound if the session does not exist, and
// model.ErrInvalidState if the session is not active.
func AddSessionItem(ctx context.Context, db *sql.DB, clk clock.Clock, sessionID int64, sku, lotNumber string, quantity int, barcodeData string) (*model.Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", model.ErrValidation)
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: sku required", model.ErrValidation)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM stock_opname_sessions WHERE id = ?`, sessionID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %d: %w", sessionID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checking session: %w", err)
	}
	if status != model.SessionStatusActive {
		return nil, fmt.Errorf("session %d is %s: %w", sessionID, status, model.ErrInvalidState)
	}

	now := clk.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO stock_opname_items
		     (session_id, sku, lot_number, quantity, barcode_data, scanned_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, sku, lotNumber, quantity, barcodeData, now, now,
	)
	if err != nil {
		return nil, wrapConstraint("adding session item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetSessionItem(ctx, db, id)
}

// GetSessionItem returns an item by ID, or nil if no such item exists.
func GetSessionItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, session_id, sku, lot_number, quantity, barcode_data, scanned_at, created_at
		 FROM stock_opname_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.SessionID, &item.SKU, &item.LotNumber, &item.Quantity,
		&item.BarcodeData, &item.ScannedAt, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListSessionItems returns all items in a session, ordered by scan time
// ascending. Items scanned at the same instant keep insertion order.
// Returns model.ErrNotFound if the session does not exist.
func ListSessionItems(ctx context.Context, db *sql.DB, sessionID int64) ([]model.Item, error) {
	session, err := GetSession(ctx, db, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %d: %w", sessionID, model.ErrNotFound)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, session_id, sku, lot_number, quantity, barcode_data, scanned_at, created_at
		 FROM stock_opname_items WHERE session_id = ? ORDER BY scanned_at, id`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing session items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.SessionID, &item.SKU, &item.LotNumber, &item.Quantity,
			&item.BarcodeData, &item.ScannedAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
