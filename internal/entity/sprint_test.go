package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSprintDefaults(t *testing.T) {
	s, err := NewSprint("Q3 push", time.Time{})

	assert.NoError(t, err)
	assert.Equal(t, 1, s.CurrentDay)
	assert.Equal(t, SprintActive, s.Status)
	assert.False(t, s.StartDate.IsZero())
}

func TestNewSprintRequiresName(t *testing.T) {
	_, err := NewSprint("", time.Now())
	assert.Error(t, err)
}

func TestCurrentWeekMapping(t *testing.T) {
	cases := map[int]int{
		1: 1, 7: 1,
		8: 2, 14: 2,
		15: 3, 21: 3,
		22: 4, 28: 4, 29: 4, 30: 4,
	}

	for day, week := range cases {
		s := &Sprint{CurrentDay: day}
		assert.Equal(t, week, s.CurrentWeek(), "day %d", day)
	}
}

func TestAdvanceDayIncrements(t *testing.T) {
	s := &Sprint{CurrentDay: 5, Status: SprintActive}

	assert.NoError(t, s.AdvanceDay())
	assert.Equal(t, 6, s.CurrentDay)
	assert.Equal(t, SprintActive, s.Status)
}

func TestAdvanceOnLastDayCompletesTheSprint(t *testing.T) {
	s := &Sprint{CurrentDay: SprintLastDay, Status: SprintActive}

	assert.NoError(t, s.AdvanceDay())
	assert.Equal(t, SprintLastDay, s.CurrentDay)
	assert.Equal(t, SprintCompleted, s.Status)
	assert.False(t, s.Unfinished())
}

func TestAdvanceRequiresActiveSprint(t *testing.T) {
	paused := &Sprint{CurrentDay: 3, Status: SprintPaused}
	assert.Error(t, paused.AdvanceDay())

	completed := &Sprint{CurrentDay: SprintLastDay, Status: SprintCompleted}
	assert.Error(t, completed.AdvanceDay())
}

func TestGoBackDayReactivatesCompletedSprint(t *testing.T) {
	s := &Sprint{CurrentDay: SprintLastDay, Status: SprintCompleted}

	assert.NoError(t, s.GoBackDay())
	assert.Equal(t, 29, s.CurrentDay)
	assert.Equal(t, SprintActive, s.Status)
}

func TestGoBackDayRejectedOnDayOne(t *testing.T) {
	s := &Sprint{CurrentDay: 1, Status: SprintActive}

	assert.Error(t, s.GoBackDay())
	assert.Equal(t, 1, s.CurrentDay)
}

func TestPauseResumeGuards(t *testing.T) {
	s := &Sprint{CurrentDay: 10, Status: SprintActive}

	assert.NoError(t, s.Pause())
	assert.Equal(t, SprintPaused, s.Status)
	assert.True(t, s.Unfinished())

	assert.Error(t, s.Pause())

	assert.NoError(t, s.Resume())
	assert.Equal(t, SprintActive, s.Status)

	assert.Error(t, s.Resume())

	completed := &Sprint{CurrentDay: 30, Status: SprintCompleted}
	assert.Error(t, completed.Pause())
	assert.Error(t, completed.Resume())
}
