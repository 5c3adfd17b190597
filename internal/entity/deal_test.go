package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDealStartsAsLead(t *testing.T) {
	d, err := NewDeal("Website redesign", "Acme Plumbing", "", 250000)

	assert.NoError(t, err)
	assert.Equal(t, StageLead, d.Stage)
	assert.Equal(t, 0, d.Position)
}

func TestNewDealRejectsNegativeValue(t *testing.T) {
	_, err := NewDeal("Website redesign", "Acme Plumbing", "", -1)

	assert.EqualError(t, err, "value_cents must not be negative")
}

func TestDealInSlot(t *testing.T) {
	d := &Deal{Stage: StageQualified, Position: 2}

	assert.True(t, d.InSlot(StageQualified, 2))
	assert.False(t, d.InSlot(StageQualified, 3), "same stage, other position")
	assert.False(t, d.InSlot(StageProposal, 2), "other stage, same position")
}
