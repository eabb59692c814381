package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
	"github.com/awicaksono/opname/internal/store"
)

// ItemsHandler handles session item endpoints.
type ItemsHandler struct {
	DB    *sql.DB
	Clock clock.Clock
}

type addItemRequest struct {
	SKU         string `json:"sku"`
	LotNumber   string `json:"lot_number"`
	Quantity    int    `json:"quantity"`
	BarcodeData string `json:"barcode_data"`
}

// Add handles POST /api/sessions/{id}/items.
func (h *ItemsHandler) Add(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.AddSessionItem(r.Context(), h.DB, h.Clock, sessionID, req.SKU, req.LotNumber, req.Quantity, req.BarcodeData)
	if err != nil {
		storeError(w, err, "failed to add item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /api/sessions/{id}/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	items, err := store.ListSessionItems(r.Context(), h.DB, sessionID)
	if err != nil {
		storeError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
