package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awicaksono/opname/internal/clock"
	"github.com/awicaksono/opname/internal/model"
)

// CreateLocation creates a new location. An empty description is stored as
// NULL.
func CreateLocation(ctx context.Context, db *sql.DB, clk clock.Clock, name, code, description string) (*model.Location, error) {
	now := clk.Now()
	var desc any
	if description != "" {
		desc = description
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO locations (name, code, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, code, desc, now, now,
	)
	if err != nil {
		return nil, wrapConstraint("creating location", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location id: %w", err)
	}

	return GetLocation(ctx, db, id)
}

// GetLocation returns a location by ID, or nil if no such location exists.
func GetLocation(ctx context.Context, db *sql.DB, id int64) (*model.Location, error) {
	loc := &model.Location{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, code, description, created_at, updated_at
		 FROM locations WHERE id = ?`, id,
	).Scan(&loc.ID, &loc.Name, &loc.Code, &description, &loc.CreatedAt, &loc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	loc.Description = description.String
	return loc, nil
}

// ListLocations returns all locations ordered by name.
func ListLocations(ctx context.Context, db *sql.DB) ([]model.Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, code, description, created_at, updated_at
		 FROM locations ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var loc model.Location
		var description sql.NullString
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Code, &description, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		loc.Description = description.String
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
