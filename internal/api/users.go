package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
	"github.com/awicaksono/opname/internal/store"
)

// UsersHandler handles user management endpoints.
type UsersHandler struct {
	DB    *sql.DB
	Clock clock.Clock
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.FullName == "" {
		jsonError(w, http.StatusBadRequest, "username and full name required")
		return
	}
	if err := model.ValidateEmail(req.Email); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, h.Clock, req.Username, req.Email, req.FullName, string(hash))
	if err != nil {
		storeError(w, err, "failed to create user")
		return
	}

	slog.Info("user created", "user", user.Username)
	jsonResponse(w, http.StatusCreated, user)
}
