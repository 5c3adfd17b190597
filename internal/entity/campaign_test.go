package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCampaignStartsAsDraft(t *testing.T) {
	c, err := NewCampaign("Local plumbers", "Austin outreach")

	assert.NoError(t, err)
	assert.Equal(t, CampaignDraft, c.Status)
	assert.NotEmpty(t, c.ID)
}

func TestStepTemplateValidation(t *testing.T) {
	_, err := NewStepTemplate("camp-1", 0, ChannelEmail, "Hi", "body", 0)
	assert.Error(t, err, "step below range")

	_, err = NewStepTemplate("camp-1", 6, ChannelEmail, "Hi", "body", 0)
	assert.Error(t, err, "step above range")

	_, err = NewStepTemplate("camp-1", 1, "CARRIER_PIGEON", "Hi", "body", 0)
	assert.Error(t, err, "unknown channel")

	_, err = NewStepTemplate("camp-1", 1, ChannelEmail, "", "body", 0)
	assert.Error(t, err, "EMAIL without subject")

	_, err = NewStepTemplate("camp-1", 1, ChannelEmail, "Hi", "", 0)
	assert.Error(t, err, "empty body")

	// LinkedIn DMs have no subject line.
	tmpl, err := NewStepTemplate("camp-1", 2, ChannelLinkedIn, "", "quick question", 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, tmpl.WaitDays)
}

func TestStepTemplateNegativeWaitFallsBackToDefault(t *testing.T) {
	tmpl, err := NewStepTemplate("camp-1", 3, ChannelEmail, "Hi again", "body", -1)

	assert.NoError(t, err)
	assert.Equal(t, DefaultWaitDaysFor(3), tmpl.WaitDays)
}

func TestDefaultWaitDaysFor(t *testing.T) {
	assert.Equal(t, 0, DefaultWaitDaysFor(1))
	assert.Equal(t, 2, DefaultWaitDaysFor(2))
	assert.Equal(t, 4, DefaultWaitDaysFor(5))
	assert.Equal(t, 0, DefaultWaitDaysFor(0))
	assert.Equal(t, 0, DefaultWaitDaysFor(6))
}
