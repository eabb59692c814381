package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
)

const sessionColumns = `id, location_id, user_id, session_name, status,
	started_at, completed_at, signature_data, created_at, updated_at`

// CreateSession opens a new stock opname session in the active state.
// Returns model.ErrNotFound if the location or user does not exist.
func CreateSession(ctx context.Context, db *sql.DB, clk clock.Clock, locationID, userID int64, sessionName string) (*model.Session, error) {
	if strings.TrimSpace(sessionName) == "" {
		return nil, fmt.Errorf("%w: session name required", model.ErrValidation)
	}

	location, err := GetLocation(ctx, db, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("location %d: %w", locationID, model.ErrNotFound)
	}

	user, err := GetUser(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}

	now := clk.Now()
	result, err := db.ExecContext(ctx,
		`INSERT INTO stock_opname_sessions
		     (location_id, user_id, session_name, status, started_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		locationID, userID, sessionName, model.SessionStatusActive, now, now, now,
	)
	if err != nil {
		return nil, wrapConstraint("creating session", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting session id: %w", err)
	}

	return GetSession(ctx, db, id)
}

// GetSession returns a session by ID, or nil if no such session exists.
func GetSession(ctx context.Context, db *sql.DB, id int64) (*model.Session, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM stock_opname_sessions WHERE id = ?`, id,
	)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return s, nil
}

// UpdateSession applies a partial update to a session and returns the
// updated row. Only fields present in the patch are touched; an explicit
// null clears the field. When status transitions to completed and no
// explicit completed_at is supplied, completed_at is stamped from the
// clock. updated_at is refreshed on every call, even a no-op patch.
//
// There is deliberately no guard against transitioning out of a terminal
// state; callers that need stricter lifecycle rules enforce them above
// this layer.
func UpdateSession(ctx context.Context, db *sql.DB, clk clock.Clock, id int64, patch model.SessionPatch) (*model.Session, error) {
	existing, err := GetSession(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("session %d: %w", id, model.ErrNotFound)
	}

	now := clk.Now()
	sets := []string{"updated_at = ?"}
	args := []any{now}

	if patch.Status.Set {
		if !patch.Status.Valid {
			return nil, fmt.Errorf("%w: status cannot be null", model.ErrValidation)
		}
		if err := model.ValidateSessionStatus(patch.Status.Value); err != nil {
			return nil, err
		}
		sets = append(sets, "status = ?")
		args = append(args, patch.Status.Value)
	}

	if patch.SignatureData.Set {
		sets = append(sets, "signature_data = ?")
		if patch.SignatureData.Valid {
			args = append(args, patch.SignatureData.Value)
		} else {
			args = append(args, nil)
		}
	}

	if patch.CompletedAt.Set {
		sets = append(sets, "completed_at = ?")
		if patch.CompletedAt.Valid {
			args = append(args, patch.CompletedAt.Value.UTC())
		} else {
			args = append(args, nil)
		}
	} else if patch.Status.Set && patch.Status.Value == model.SessionStatusCompleted {
		// Auto-stamp completion time when the caller did not supply one.
		sets = append(sets, "completed_at = ?")
		args = append(args, now)
	}

	args = append(args, id)
	_, err = db.ExecContext(ctx,
		`UPDATE stock_opname_sessions SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return nil, wrapConstraint("updating session", err)
	}

	return GetSession(ctx, db, id)
}

// GetSessionDetail returns a session hydrated with its location, user, and
// complete item set. Returns model.ErrNotFound if the session does not
// exist.
func GetSessionDetail(ctx context.Context, db *sql.DB, id int64) (*model.SessionDetail, error) {
	session, err := GetSession(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %d: %w", id, model.ErrNotFound)
	}

	location, err := GetLocation(ctx, db, session.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("location %d: %w", session.LocationID, model.ErrNotFound)
	}

	user, err := GetUser(ctx, db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", session.UserID, model.ErrNotFound)
	}

	items, err := ListSessionItems(ctx, db, id)
	if err != nil {
		return nil, err
	}

	return &model.SessionDetail{
		Session:  *session,
		Location: *location,
		User:     *user,
		Items:    items,
	}, nil
}

// ListUserSessions returns all sessions owned by a user, each hydrated
// with its location, user, and items. A user with no sessions yields an
// empty slice.
func ListUserSessions(ctx context.Context, db *sql.DB, userID int64) ([]model.SessionDetail, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM stock_opname_sessions WHERE user_id = ? ORDER BY started_at, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	details := make([]model.SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		detail, err := GetSessionDetail(ctx, db, s.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.Session, error) {
	s := &model.Session{}
	var completedAt sql.NullTime
	var signatureData sql.NullString
	err := row.Scan(&s.ID, &s.LocationID, &s.UserID, &s.SessionName, &s.Status,
		&s.StartedAt, &completedAt, &signatureData, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}
	if signatureData.Valid {
		v := signatureData.String
		s.SignatureData = &v
	}
	return s, nil
}
