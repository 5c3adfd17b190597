package database

import (
	"context"
	"database/sql"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Status,
		p.DueDate,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT id, name, description, status, due_date, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var p entity.Project
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.DueDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	query := `
		SELECT id, name, description, status, due_date, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*entity.Project{}
	for rows.Next() {
		var p entity.Project
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.DueDate, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, due_date = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Status, p.DueDate)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProjectNotFound
	}
	return nil
}
