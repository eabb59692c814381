package model

import (
	"fmt"
	"time"
)

// Session represents one stock opname counting exercise, bound to a
// location and the user running it.
type Session struct {
	ID            int64      `json:"id"`
	LocationID    int64      `json:"location_id"`
	UserID        int64      `json:"user_id"`
	SessionName   string     `json:"session_name"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	SignatureData *string    `json:"signature_data"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Session statuses. Completed and cancelled are terminal: item appends are
// rejected for both.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// ValidateSessionStatus checks that status is one of the known values.
func ValidateSessionStatus(status string) error {
	switch status {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled:
		return nil
	}
	return fmt.Errorf("%w: invalid session status %q", ErrValidation, status)
}

// SessionPatch is a partial update of a session. Each field is tri-state:
// left alone when unset, cleared when set to null, overwritten when set to
// a value. Status cannot be cleared, only replaced.
type SessionPatch struct {
	Status        Optional[string]    `json:"status"`
	SignatureData Optional[string]    `json:"signature_data"`
	CompletedAt   Optional[time.Time] `json:"completed_at"`
}

// SessionDetail is a session hydrated with its location, owning user, and
// the complete item set, in scan order.
type SessionDetail struct {
	Session
	Location Location `json:"location"`
	User     User     `json:"user"`
	Items    []Item   `json:"items"`
}

// TotalQuantity sums the quantities of all items in the session.
func (d *SessionDetail) TotalQuantity() int {
	total := 0
	for _, item := range d.Items {
		total += item.Quantity
	}
	return total
}
