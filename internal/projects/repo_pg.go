package projects

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

func (r *PGRepo) Create(ctx context.Context, p Project) error {
	const query = `
INSERT INTO projects (id, name, description, created_by, ai_prompt_custom, expected_completion_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.CreatedBy,
		nullableString(p.AIPromptCustom),
		p.ExpectedCompletionDate,
		p.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, projectID string) (Project, error) {
	const query = `
SELECT id, name, description, created_by, ai_prompt_custom, expected_completion_date, modified_by, modified_date, created_at
FROM projects
WHERE id = $1
LIMIT 1`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PGRepo) ListByCreator(ctx context.Context, userID string) ([]Project, error) {
	const query = `
SELECT id, name, description, created_by, ai_prompt_custom, expected_completion_date, modified_by, modified_date, created_at
FROM projects
WHERE created_by = $1
ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, userID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Project, error) {
	const query = `
SELECT id, name, description, created_by, ai_prompt_custom, expected_completion_date, modified_by, modified_date, created_at
FROM projects
ORDER BY created_at DESC`
	return r.queryProjects(ctx, query)
}

func (r *PGRepo) UpdatePrompt(ctx context.Context, projectID, prompt, modifiedBy string) error {
	const query = `
UPDATE projects
SET ai_prompt_custom = $2, modified_by = $3, modified_date = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, projectID, nullableString(prompt), modifiedBy)
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

func (r *PGRepo) CreateRequest(ctx context.Context, req Request) error {
	const query = `
INSERT INTO project_requests (id, project_id, student_id, status, resume_path, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		req.ID,
		req.ProjectID,
		req.StudentID,
		req.Status,
		req.ResumePath,
		req.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateRequest
		}
		return err
	}
	return nil
}

func (r *PGRepo) ListPendingRequests(ctx context.Context, projectID string) ([]Request, error) {
	const query = `
SELECT pr.id, pr.project_id, pr.student_id, pr.status, pr.resume_path, pr.created_at, u.name, u.email
FROM project_requests pr
JOIN users u ON u.id = pr.student_id
WHERE pr.project_id = $1 AND pr.status = 'PENDING'
ORDER BY pr.created_at`
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var req Request
		var name sql.NullString
		if err := rows.Scan(
			&req.ID,
			&req.ProjectID,
			&req.StudentID,
			&req.Status,
			&req.ResumePath,
			&req.CreatedAt,
			&name,
			&req.StudentEmail,
		); err != nil {
			return nil, err
		}
		if name.Valid {
			req.StudentName = name.String
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PGRepo) queryProjects(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var prompt sql.NullString
	var modifiedBy sql.NullString
	var modifiedDate sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreatedBy,
		&prompt,
		&p.ExpectedCompletionDate,
		&modifiedBy,
		&modifiedDate,
		&p.CreatedAt,
	)
	if err != nil {
		return Project{}, err
	}
	if prompt.Valid {
		p.AIPromptCustom = prompt.String
	}
	if modifiedBy.Valid {
		p.ModifiedBy = modifiedBy.String
	}
	if modifiedDate.Valid {
		p.ModifiedDate = &modifiedDate.Time
	}
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
