package locations

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, l Location) error {
	const query = `
INSERT INTO locations (id, name, building, capacity, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, l.ID, l.Name, nullableString(l.Building), l.Capacity, l.CreatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Location, error) {
	const query = `
SELECT id, name, building, capacity, created_at FROM locations WHERE id = $1 LIMIT 1`
	l, err := scanLocation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Location{}, ErrNotFound
		}
		return Location{}, err
	}
	return l, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Location, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, building, capacity, created_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBooking checks for interval overlap and inserts inside one
// transaction so concurrent bookings cannot both pass the check.
func (r *PGRepo) CreateBooking(ctx context.Context, b Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1)`, b.LocationID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	var overlaps bool
	const overlapQuery = `
SELECT EXISTS (
  SELECT 1 FROM location_bookings
  WHERE location_id = $1 AND starts_at < $3 AND $2 < ends_at
)`
	err = tx.QueryRowContext(ctx, overlapQuery, b.LocationID, b.StartsAt, b.EndsAt).Scan(&overlaps)
	if err != nil {
		return err
	}
	if overlaps {
		return ErrOverlap
	}

	const insert = `
INSERT INTO location_bookings (id, location_id, user_id, purpose, starts_at, ends_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, insert, b.ID, b.LocationID, b.UserID, nullableString(b.Purpose), b.StartsAt, b.EndsAt, b.CreatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepo) ListBookings(ctx context.Context, locationID string, from time.Time) ([]Booking, error) {
	const query = `
SELECT id, location_id, user_id, purpose, starts_at, ends_at, created_at
FROM location_bookings
WHERE location_id = $1 AND ends_at > $2
ORDER BY starts_at`
	rows, err := r.DB.QueryContext(ctx, query, locationID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		var purpose sql.NullString
		if err := rows.Scan(&b.ID, &b.LocationID, &b.UserID, &purpose, &b.StartsAt, &b.EndsAt, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Purpose = purpose.String
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (Location, error) {
	var l Location
	var building sql.NullString
	err := row.Scan(&l.ID, &l.Name, &building, &l.Capacity, &l.CreatedAt)
	if err != nil {
		return Location{}, err
	}
	l.Building = building.String
	return l, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
