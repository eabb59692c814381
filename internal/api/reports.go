package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/report"
	"github.com/awicaksono/opname/internal/store"
)

// ReportsHandler handles session report exports.
type ReportsHandler struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Get handles GET /api/sessions/{id}/report?format=csv|text.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	detail, err := store.GetSessionDetail(r.Context(), h.DB, sessionID)
	if err != nil {
		storeError(w, err, "failed to load session")
		return
	}

	switch format {
	case "csv":
		doc := report.RenderTabular(detail)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("stock-opname-%d.csv", sessionID)))
		w.Write(doc)
	case "text":
		doc := report.RenderNarrative(detail, h.Clock.Now())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("stock-opname-%d.txt", sessionID)))
		w.Write(doc)
	default:
		jsonError(w, http.StatusBadRequest, "format must be csv or text")
	}
}
