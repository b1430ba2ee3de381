package feedback

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, t Ticket) error {
	const query = `
INSERT INTO feedback (id, user_id, category, message, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.UserID, t.Category, t.Message, t.Status, t.CreatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Ticket, error) {
	const query = `
SELECT id, user_id, category, message, status, created_at, resolved_at, resolved_by
FROM feedback
WHERE id = $1
LIMIT 1`
	t, err := scanTicket(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ticket{}, ErrNotFound
		}
		return Ticket{}, err
	}
	return t, nil
}

func (r *PGRepo) List(ctx context.Context, status string) ([]Ticket, error) {
	query := `
SELECT id, user_id, category, message, status, created_at, resolved_at, resolved_by
FROM feedback`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) Resolve(ctx context.Context, id, resolvedBy string) error {
	const query = `
UPDATE feedback SET status = $1, resolved_at = NOW(), resolved_by = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, StatusResolved, resolvedBy, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (Ticket, error) {
	var t Ticket
	var resolvedAt sql.NullTime
	var resolvedBy sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.Category, &t.Message, &t.Status, &t.CreatedAt, &resolvedAt, &resolvedBy)
	if err != nil {
		return Ticket{}, err
	}
	if resolvedAt.Valid {
		t.ResolvedAt = resolvedAt.Time
	}
	t.ResolvedBy = resolvedBy.String
	return t, nil
}
