package sqlite

import (
	"context"

	"github.com/projecthub/projecthub/internal/hub/domain"
)

type projectsRepo struct {
	q querier
}

func (r *projectsRepo) Create(ctx context.Context, p domain.Project) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO projects (id, name, owner_id, created_at)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.OwnerID, p.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (domain.Project, error) {
	var p domain.Project
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) AddMember(ctx context.Context, m domain.ProjectMember) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO project_members (project_id, user_id, role, added_at)
		VALUES (?, ?, ?, ?)`,
		m.ProjectID, m.UserID, m.Role, m.AddedAt,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT project_id, user_id, role, added_at FROM project_members
		WHERE project_id = ? ORDER BY added_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProjectMember
	for rows.Next() {
		var m domain.ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
