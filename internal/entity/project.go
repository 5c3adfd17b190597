package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

const (
	ProjectActive    = "ACTIVE"
	ProjectOnHold    = "ON_HOLD"
	ProjectCompleted = "COMPLETED"
	ProjectArchived  = "ARCHIVED"
)

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"` // ACTIVE, ON_HOLD, COMPLETED, ARCHIVED
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewProject(name, description string, dueDate *time.Time) (*Project, error) {
	p := &Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      ProjectActive,
		DueDate:     dueDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	switch p.Status {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return nil
	default:
		return errors.New("invalid status")
	}
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}
