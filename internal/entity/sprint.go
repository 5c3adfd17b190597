package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSprintNotFound = errors.New("sprint not found")

const (
	SprintActive    = "ACTIVE"
	SprintPaused    = "PAUSED"
	SprintCompleted = "COMPLETED"

	SprintLastDay = 30
)

// Sprint is a 30-day execution cycle split into four weeks. Days 1-7 are
// week 1, 8-14 week 2, 15-21 week 3 and 22-30 week 4.
type Sprint struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	CurrentDay int       `json:"current_day"`
	Status     string    `json:"status"` // ACTIVE, PAUSED, COMPLETED
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSprint(name string, startDate time.Time) (*Sprint, error) {
	if startDate.IsZero() {
		startDate = time.Now()
	}

	s := &Sprint{
		ID:         uuid.New().String(),
		Name:       name,
		StartDate:  startDate,
		CurrentDay: 1,
		Status:     SprintActive,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sprint) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.CurrentDay < 1 || s.CurrentDay > SprintLastDay {
		return errors.New("current_day out of range")
	}
	switch s.Status {
	case SprintActive, SprintPaused, SprintCompleted:
		return nil
	default:
		return errors.New("invalid status")
	}
}

// CurrentWeek maps the current day to its week number. Week 4 absorbs the
// two extra days of the cycle.
func (s *Sprint) CurrentWeek() int {
	week := (s.CurrentDay + 6) / 7
	if week > 4 {
		week = 4
	}
	return week
}

// Unfinished reports whether the sprint still blocks creating a new one.
func (s *Sprint) Unfinished() bool {
	return s.Status == SprintActive || s.Status == SprintPaused
}

// AdvanceDay moves to the next day. Advancing past the last day completes
// the sprint and the day stays at 30.
func (s *Sprint) AdvanceDay() error {
	if s.Status != SprintActive {
		return errors.New("sprint is not active")
	}
	if s.CurrentDay >= SprintLastDay {
		s.Status = SprintCompleted
		s.UpdatedAt = time.Now()
		return nil
	}
	s.CurrentDay++
	s.UpdatedAt = time.Now()
	return nil
}

// GoBackDay moves one day back. A completed sprint becomes active again.
func (s *Sprint) GoBackDay() error {
	if s.CurrentDay <= 1 {
		return errors.New("sprint is already on day 1")
	}
	s.CurrentDay--
	if s.Status == SprintCompleted {
		s.Status = SprintActive
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Sprint) Pause() error {
	if s.Status != SprintActive {
		return errors.New("only an active sprint can be paused")
	}
	s.Status = SprintPaused
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Sprint) Resume() error {
	if s.Status != SprintPaused {
		return errors.New("only a paused sprint can be resumed")
	}
	s.Status = SprintActive
	s.UpdatedAt = time.Now()
	return nil
}

type SprintRepositoryInterface interface {
	Create(ctx context.Context, s *Sprint) error
	FindByID(ctx context.Context, id string) (*Sprint, error)
	FindCurrent(ctx context.Context) (*Sprint, error)
	HasUnfinished(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]*Sprint, error)
	Update(ctx context.Context, s *Sprint) error
	Delete(ctx context.Context, id string) error
}
