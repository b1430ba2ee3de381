package internships

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, i Internship) error {
	skills, err := json.Marshal(i.Skills)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO internships (id, title, duration, skills, faculty_id, slots, start_date, end_date, description_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		i.ID,
		i.Title,
		i.Duration,
		skills,
		i.FacultyID,
		nullableInt(i.Slots),
		i.StartDate,
		i.EndDate,
		nullableString(i.DescriptionKey),
		i.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Internship, error) {
	const query = `
SELECT i.id, i.title, i.duration, i.skills, i.faculty_id, u.name, i.slots, i.start_date, i.end_date, i.description_key, i.created_at
FROM internships i
LEFT JOIN users u ON u.id = i.faculty_id
WHERE i.id = $1
LIMIT 1`
	i, err := scanInternship(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Internship{}, ErrNotFound
		}
		return Internship{}, err
	}
	return i, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Internship, error) {
	const query = `
SELECT i.id, i.title, i.duration, i.skills, i.faculty_id, u.name, i.slots, i.start_date, i.end_date, i.description_key, i.created_at
FROM internships i
LEFT JOIN users u ON u.id = i.faculty_id
ORDER BY i.start_date DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Internship
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM internships WHERE id = $1`, id)
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

func scanInternship(row rowScanner) (Internship, error) {
	var i Internship
	var skillsRaw []byte
	var facultyName sql.NullString
	var slots sql.NullInt64
	var descriptionKey sql.NullString
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Duration,
		&skillsRaw,
		&i.FacultyID,
		&facultyName,
		&slots,
		&i.StartDate,
		&i.EndDate,
		&descriptionKey,
		&i.CreatedAt,
	)
	if err != nil {
		return Internship{}, err
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &i.Skills); err != nil {
			return Internship{}, err
		}
	}
	if facultyName.Valid {
		i.FacultyName = facultyName.String
	}
	if slots.Valid {
		v := int(slots.Int64)
		i.Slots = &v
	}
	if descriptionKey.Valid {
		i.DescriptionKey = descriptionKey.String
	}
	return i, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
