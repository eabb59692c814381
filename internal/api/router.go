package api

import (
	"database/sql"
	"net/http"

	"github.com/awicaksono/opname/internal/clock"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, clk clock.Clock, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db, Clock: clk}
	locationsHandler := &LocationsHandler{DB: db, Clock: clk}
	sessionsHandler := &SessionsHandler{DB: db, Clock: clk}
	itemsHandler := &ItemsHandler{DB: db, Clock: clk}
	reportsHandler := &ReportsHandler{DB: db, Clock: clk}

	authMW := AuthMiddleware(jwtSecret)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Users.
	mux.Handle("POST /api/users", authMW(http.HandlerFunc(usersHandler.Create)))
	mux.Handle("GET /api/users/{id}/sessions", authMW(http.HandlerFunc(sessionsHandler.ListForUser)))

	// Locations.
	mux.Handle("GET /api/locations", authMW(http.HandlerFunc(locationsHandler.List)))
	mux.Handle("POST /api/locations", authMW(http.HandlerFunc(locationsHandler.Create)))

	// Sessions and their items/reports.
	mux.Handle("POST /api/sessions", authMW(http.HandlerFunc(sessionsHandler.Create)))
	mux.Handle("PATCH /api/sessions/{id}", authMW(http.HandlerFunc(sessionsHandler.Update)))
	mux.Handle("POST /api/sessions/{id}/items", authMW(http.HandlerFunc(itemsHandler.Add)))
	mux.Handle("GET /api/sessions/{id}/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/sessions/{id}/report", authMW(http.HandlerFunc(reportsHandler.Get)))

	return mux
}
