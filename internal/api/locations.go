package api

import (
	"database/sql"
	"net/http"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
	"github.com/awicaksono/opname/internal/store"
)

// LocationsHandler handles location endpoints.
type LocationsHandler struct {
	DB    *sql.DB
	Clock clock.Clock
}

type createLocationRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Code == "" {
		jsonError(w, http.StatusBadRequest, "name and code required")
		return
	}

	location, err := store.CreateLocation(r.Context(), h.DB, h.Clock, req.Name, req.Code, req.Description)
	if err != nil {
		storeError(w, err, "failed to create location")
		return
	}

	jsonResponse(w, http.StatusCreated, location)
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := store.ListLocations(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	jsonResponse(w, http.StatusOK, locations)
}
