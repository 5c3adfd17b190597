package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// Kanban columns for tasks.
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskDone       = "DONE"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

var taskStatuses = map[string]bool{
	TaskTodo:       true,
	TaskInProgress: true,
	TaskDone:       true,
}

func ValidTaskStatus(s string) bool {
	return taskStatuses[s]
}

type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`   // TODO, IN_PROGRESS, DONE
	Position    int        `json:"position"` // ordering inside the column
	Priority    string     `json:"priority"` // LOW, MEDIUM, HIGH
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTask(projectID, title, description, priority string, dueDate *time.Time) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      TaskTodo,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if !ValidTaskStatus(t.Status) {
		return errors.New("invalid status")
	}
	if t.Priority != PriorityLow && t.Priority != PriorityMedium && t.Priority != PriorityHigh {
		return errors.New("priority must be LOW, MEDIUM or HIGH")
	}
	return nil
}

// InSlot reports whether the task already sits on that column and position.
func (t *Task) InSlot(status string, position int) bool {
	return t.Status == status && t.Position == position
}

// TaskFilter narrows List queries; zero values mean "any".
type TaskFilter struct {
	ProjectID string
	Status    string
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Move(ctx context.Context, id, status string, position int) (*Task, error)
	Delete(ctx context.Context, id string) error
}
