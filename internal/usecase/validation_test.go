package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() CreateProspectInput {
	return CreateProspectInput{
		CampaignID:   "camp-1",
		BusinessName: "Acme Plumbing",
		Email:        "jo@acme.com",
	}
}

func TestValidateCreateProspectInputAcceptsValidInput(t *testing.T) {
	assert.Empty(t, ValidateCreateProspectInput(validInput()))
}

func TestValidateCreateProspectInputRequiresContactChannel(t *testing.T) {
	input := validInput()
	input.Email = ""

	errs := ValidateCreateProspectInput(input)
	assert.NotEmpty(t, errs)
	assert.Equal(t, "email", errs[0].Field)
}

func TestValidateCreateProspectInputPhoneOrWebsiteSuffice(t *testing.T) {
	input := validInput()
	input.Email = ""
	input.Phone = "(512) 555-0100"
	assert.Empty(t, ValidateCreateProspectInput(input))

	input.Phone = ""
	input.Website = "acme.com"
	assert.Empty(t, ValidateCreateProspectInput(input))
}

func TestValidateCreateProspectInputRejectsBadValues(t *testing.T) {
	input := validInput()
	input.Email = "not-an-email"
	assert.NotEmpty(t, ValidateCreateProspectInput(input))

	input = validInput()
	input.Phone = "123"
	assert.NotEmpty(t, ValidateCreateProspectInput(input))

	input = validInput()
	input.Website = "not a url"
	assert.NotEmpty(t, ValidateCreateProspectInput(input))
}
