package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

const tripColumns = `id, group_id, title, location, departs_on, returns_on, capacity, notes, created_at, updated_at`

// TripRepository handles trip logistics data access.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// GetByID retrieves a trip by ID, or nil when missing.
func (r *TripRepository) GetByID(ctx context.Context, id int) (*model.Trip, error) {
	t := &model.Trip{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, id,
	).Scan(&t.ID, &t.GroupID, &t.Title, &t.Location, &t.DepartsOn, &t.ReturnsOn,
		&t.Capacity, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// List retrieves all trips ordered by departure date.
func (r *TripRepository) List(ctx context.Context) ([]model.Trip, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY departs_on ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.GroupID, &t.Title, &t.Location, &t.DepartsOn,
			&t.ReturnsOn, &t.Capacity, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Create inserts a new trip.
func (r *TripRepository) Create(ctx context.Context, t *model.Trip) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO trips (group_id, title, location, departs_on, returns_on, capacity, notes)
		 VALUES ($1, $2, $3, $4::date, $5::date, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.GroupID, t.Title, t.Location, t.DepartsOn, t.ReturnsOn, t.Capacity, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies an existing trip.
func (r *TripRepository) Update(ctx context.Context, t *model.Trip) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE trips
		 SET group_id = $1, title = $2, location = $3, departs_on = $4::date,
		     returns_on = $5::date, capacity = $6, notes = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		t.GroupID, t.Title, t.Location, t.DepartsOn, t.ReturnsOn, t.Capacity, t.Notes, t.ID)
	return err
}

// Delete removes a trip by ID.
func (r *TripRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	return err
}
