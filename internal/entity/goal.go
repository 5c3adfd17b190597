package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrGoalNotFound = errors.New("goal not found")

const (
	GoalOnTrack  = "ON_TRACK"
	GoalAtRisk   = "AT_RISK"
	GoalAchieved = "ACHIEVED"
	GoalMissed   = "MISSED"
)

// Goal tracks a numeric target (e.g. "booked calls", metric-agnostic).
type Goal struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Metric       string     `json:"metric,omitempty"` // what is being counted
	TargetValue  int        `json:"target_value"`
	CurrentValue int        `json:"current_value"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       string     `json:"status"` // ON_TRACK, AT_RISK, ACHIEVED, MISSED
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewGoal(title, metric string, targetValue int, dueDate *time.Time) (*Goal, error) {
	g := &Goal{
		ID:          uuid.New().String(),
		Title:       title,
		Metric:      metric,
		TargetValue: targetValue,
		DueDate:     dueDate,
		Status:      GoalOnTrack,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Goal) Validate() error {
	if g.Title == "" {
		return errors.New("title is required")
	}
	if g.TargetValue <= 0 {
		return errors.New("target_value must be positive")
	}
	return nil
}

// RecordProgress sets the current value and flips to ACHIEVED once the
// target is reached. It never un-achieves a goal.
func (g *Goal) RecordProgress(value int) {
	if value < 0 {
		value = 0
	}
	g.CurrentValue = value
	if g.CurrentValue >= g.TargetValue {
		g.Status = GoalAchieved
	}
	g.UpdatedAt = time.Now()
}

type GoalRepository interface {
	Create(ctx context.Context, g *Goal) error
	FindByID(ctx context.Context, id string) (*Goal, error)
	List(ctx context.Context) ([]*Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id string) error
}
