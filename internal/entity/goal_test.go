package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordProgressFlipsToAchievedAtTarget(t *testing.T) {
	g, err := NewGoal("Book 10 calls", "calls booked", 10, nil)
	assert.NoError(t, err)
	assert.Equal(t, GoalOnTrack, g.Status)

	g.RecordProgress(4)
	assert.Equal(t, 4, g.CurrentValue)
	assert.Equal(t, GoalOnTrack, g.Status)

	g.RecordProgress(10)
	assert.Equal(t, GoalAchieved, g.Status)
}

func TestRecordProgressNeverUnachieves(t *testing.T) {
	g, _ := NewGoal("Book 10 calls", "calls booked", 10, nil)
	g.RecordProgress(12)
	assert.Equal(t, GoalAchieved, g.Status)

	g.RecordProgress(3)
	assert.Equal(t, 3, g.CurrentValue)
	assert.Equal(t, GoalAchieved, g.Status)
}

func TestRecordProgressClampsNegativeValues(t *testing.T) {
	g, _ := NewGoal("Book 10 calls", "calls booked", 10, nil)
	g.RecordProgress(-5)
	assert.Equal(t, 0, g.CurrentValue)
}

func TestNewGoalRequiresPositiveTarget(t *testing.T) {
	_, err := NewGoal("Book calls", "calls", 0, nil)
	assert.Error(t, err)
}
