package database

import (
	"context"
	"database/sql"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type GoalRepository struct {
	DB *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.Goal) error {
	query := `
		INSERT INTO goals (id, title, metric, target_value, current_value, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		g.ID,
		g.Title,
		g.Metric,
		g.TargetValue,
		g.CurrentValue,
		g.DueDate,
		g.Status,
		g.CreatedAt,
		g.UpdatedAt,
	)
	return err
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	query := `
		SELECT id, title, metric, target_value, current_value, due_date, status, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var g entity.Goal
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&g.ID,
		&g.Title,
		&g.Metric,
		&g.TargetValue,
		&g.CurrentValue,
		&g.DueDate,
		&g.Status,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) List(ctx context.Context) ([]*entity.Goal, error) {
	query := `
		SELECT id, title, metric, target_value, current_value, due_date, status, created_at, updated_at
		FROM goals
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*entity.Goal{}
	for rows.Next() {
		var g entity.Goal
		err := rows.Scan(&g.ID, &g.Title, &g.Metric, &g.TargetValue, &g.CurrentValue, &g.DueDate, &g.Status, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, g *entity.Goal) error {
	query := `
		UPDATE goals
		SET title = $2, metric = $3, target_value = $4, current_value = $5,
			due_date = $6, status = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, g.ID, g.Title, g.Metric, g.TargetValue, g.CurrentValue, g.DueDate, g.Status)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrGoalNotFound
	}
	return nil
}
