// Package store implements persistence for users, locations, stock opname
// sessions, and session items over database/sql. Store functions own the
// lifecycle invariants: items can only be appended to active sessions, and
// the completion timestamp is stamped when a session transitions to
// completed without an explicit one.
package store

import (
	"fmt"
	"strings"

	"github.com/awicaksono/opname/internal/model"
)

// wrapConstraint converts SQLite constraint failures (unique, foreign key,
// check) into model.ErrConstraint so handlers can map them to a conflict
// response. Other errors are returned wrapped with op.
func wrapConstraint(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "constraint failed") {
		return fmt.Errorf("%s: %w: %v", op, model.ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
