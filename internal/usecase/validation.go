package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateProspectInput(input CreateProspectInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CampaignID) == "" {
		errors = append(errors, ValidationError{"campaign_id", "is required"})
	}

	if strings.TrimSpace(input.BusinessName) == "" {
		errors = append(errors, ValidationError{"business_name", "is required"})
	} else if len(input.BusinessName) > 200 {
		errors = append(errors, ValidationError{"business_name", "must not exceed 200 characters"})
	}

	hasEmail := strings.TrimSpace(input.Email) != ""
	hasPhone := strings.TrimSpace(input.Phone) != ""
	hasWebsite := strings.TrimSpace(input.Website) != ""
	if !hasEmail && !hasPhone && !hasWebsite {
		errors = append(errors, ValidationError{"email", "at least one of email, phone or website is required"})
	}

	if hasEmail {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if hasPhone && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if hasWebsite && !isValidWebsite(input.Website) {
		errors = append(errors, ValidationError{"website", "must be a valid URL"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 15
}

func isValidWebsite(raw string) bool {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}
