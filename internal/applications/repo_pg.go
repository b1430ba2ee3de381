package applications

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Application) error {
	const query = `
INSERT INTO applications (id, student_id, internship_id, status, resume_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.StudentID,
		a.InternshipID,
		a.Status,
		nullableString(a.ResumeKey),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}

const selectColumns = `
SELECT a.id, a.student_id, a.internship_id, a.status, a.resume_key, i.title, u.name, u.email, a.created_at, a.updated_at
FROM applications a
LEFT JOIN internships i ON i.id = a.internship_id
LEFT JOIN users u ON u.id = a.student_id`

func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, err := scanApplication(r.DB.QueryRowContext(ctx, selectColumns+` WHERE a.id = $1 LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PGRepo) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return r.query(ctx, selectColumns+` WHERE a.student_id = $1 ORDER BY a.created_at DESC`, studentID)
}

func (r *PGRepo) ListByInternship(ctx context.Context, internshipID string) ([]Application, error) {
	return r.query(ctx, selectColumns+` WHERE a.internship_id = $1 ORDER BY a.created_at DESC`, internshipID)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
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

func scanApplication(row rowScanner) (Application, error) {
	var a Application
	var resumeKey, title, name, email sql.NullString
	err := row.Scan(
		&a.ID,
		&a.StudentID,
		&a.InternshipID,
		&a.Status,
		&resumeKey,
		&title,
		&name,
		&email,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	a.ResumeKey = resumeKey.String
	a.InternshipTitle = title.String
	a.StudentName = name.String
	a.StudentEmail = email.String
	return a, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
