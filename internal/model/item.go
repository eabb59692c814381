package model

import "time"

// Item represents one scanned (or manually entered) count record inside a
// session. Items are append-only: once written they are never modified or
// deleted. ScannedAt is stamped by the store, not the caller.
type Item struct {
	ID          int64     `json:"id"`
	SessionID   int64     `json:"session_id"`
	SKU         string    `json:"sku"`
	LotNumber   string    `json:"lot_number"`
	Quantity    int       `json:"quantity"`
	BarcodeData string    `json:"barcode_data"`
	ScannedAt   time.Time `json:"scanned_at"`
	CreatedAt   time.Time `json:"created_at"`
}
