package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/imaging"
	"github.com/awicaksono/opname/internal/model"
	"github.com/awicaksono/opname/internal/store"
)

// SessionsHandler handles stock opname session endpoints.
type SessionsHandler struct {
	DB    *sql.DB
	Clock clock.Clock
}

type createSessionRequest struct {
	LocationID  int64  `json:"location_id"`
	UserID      int64  `json:"user_id"`
	SessionName string `json:"session_name"`
}

// Create handles POST /api/sessions.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := store.CreateSession(r.Context(), h.DB, h.Clock, req.LocationID, req.UserID, req.SessionName)
	if err != nil {
		storeError(w, err, "failed to create session")
		return
	}

	slog.Info("session opened", "session", session.ID, "location", session.LocationID, "user", session.UserID)
	jsonResponse(w, http.StatusCreated, session)
}

// Update handles PATCH /api/sessions/{id}. The body is a tri-state patch:
// absent fields are untouched, null clears, a value overwrites. A supplied
// signature is validated and normalized before storage.
func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var patch model.SessionPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.SignatureData.Set && patch.SignatureData.Valid {
		normalized, err := imaging.NormalizeSignature(patch.SignatureData.Value)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid signature: "+err.Error())
			return
		}
		patch.SignatureData = model.Some(normalized)
	}

	session, err := store.UpdateSession(r.Context(), h.DB, h.Clock, id, patch)
	if err != nil {
		storeError(w, err, "failed to update session")
		return
	}

	jsonResponse(w, http.StatusOK, session)
}

// ListForUser handles GET /api/users/{id}/sessions. Each session is
// returned fully hydrated with its location, user, and items.
func (h *SessionsHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	sessions, err := store.ListUserSessions(r.Context(), h.DB, userID)
	if err != nil {
		storeError(w, err, "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []model.SessionDetail{}
	}
	jsonResponse(w, http.StatusOK, sessions)
}
