package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

const taskColumns = `id, COALESCE(project_id::text, ''), title, description, status, position,
	priority, due_date, created_at, updated_at`

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// Create appends the task at the bottom of its column.
func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, title, description, status, position, priority, due_date, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE status = $5),
			$6, $7, $8, $9)
		RETURNING position
	`

	return r.DB.QueryRowContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.CreatedAt,
		t.UpdatedAt,
	).Scan(&t.Position)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error) {
	builder := sq.Select(taskColumns).
		From("tasks").
		OrderBy("status ASC", "position ASC").
		PlaceholderFormat(sq.Dollar)

	if filter.ProjectID != "" {
		builder = builder.Where(sq.Eq{"project_id": filter.ProjectID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, due_date = $5,
			project_id = NULLIF($6, '')::uuid, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.Priority, t.DueDate, t.ProjectID)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

// Move drags the task onto another column. Same column and position is a
// no-op; no write is issued.
func (r *TaskRepository) Move(ctx context.Context, id, status string, position int) (*entity.Task, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.InSlot(status, position) {
		return current, nil
	}

	query := `
		UPDATE tasks
		SET status = $2, position = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id, status, position))
	if err == sql.ErrNoRows {
		return nil, entity.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var t entity.Task

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Position,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
