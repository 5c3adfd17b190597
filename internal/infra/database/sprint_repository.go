package database

import (
	"context"
	"database/sql"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type SprintRepository struct {
	DB *sql.DB
}

func NewSprintRepository(db *sql.DB) *SprintRepository {
	return &SprintRepository{DB: db}
}

func (r *SprintRepository) Create(ctx context.Context, s *entity.Sprint) error {
	query := `
		INSERT INTO sprints (id, name, start_date, current_day, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.StartDate,
		s.CurrentDay,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SprintRepository) FindByID(ctx context.Context, id string) (*entity.Sprint, error) {
	query := `
		SELECT id, name, start_date, current_day, status, created_at, updated_at
		FROM sprints
		WHERE id = $1
	`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// FindCurrent returns the sprint being worked on: the newest one that has
// not been completed.
func (r *SprintRepository) FindCurrent(ctx context.Context) (*entity.Sprint, error) {
	query := `
		SELECT id, name, start_date, current_day, status, created_at, updated_at
		FROM sprints
		WHERE status IN ('ACTIVE', 'PAUSED')
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(r.DB.QueryRowContext(ctx, query))
}

func (r *SprintRepository) HasUnfinished(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sprints WHERE status IN ('ACTIVE', 'PAUSED'))`

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SprintRepository) List(ctx context.Context) ([]*entity.Sprint, error) {
	query := `
		SELECT id, name, start_date, current_day, status, created_at, updated_at
		FROM sprints
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sprints := []*entity.Sprint{}
	for rows.Next() {
		var s entity.Sprint
		err := rows.Scan(&s.ID, &s.Name, &s.StartDate, &s.CurrentDay, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, &s)
	}

	return sprints, rows.Err()
}

func (r *SprintRepository) Update(ctx context.Context, s *entity.Sprint) error {
	query := `
		UPDATE sprints
		SET name = $2, current_day = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.CurrentDay, s.Status)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSprintNotFound
	}
	return nil
}

func (r *SprintRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sprints WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSprintNotFound
	}
	return nil
}

func (r *SprintRepository) scanOne(row *sql.Row) (*entity.Sprint, error) {
	var s entity.Sprint

	err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.CurrentDay, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSprintNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
