package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrTemplateNotFound  = errors.New("step template not found")
	ErrDuplicateTemplate = errors.New("campaign already has a template for this step")
)

const (
	CampaignDraft    = "DRAFT"
	CampaignActive   = "ACTIVE"
	CampaignPaused   = "PAUSED"
	CampaignArchived = "ARCHIVED"
)

// ValidCampaignStatus reports whether s is a known campaign status.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignArchived:
		return true
	}
	return false
}

// Outreach channels for a cadence step.
const (
	ChannelEmail    = "EMAIL"
	ChannelLinkedIn = "LINKEDIN"
)

// DefaultWaitDays is the fallback cadence: days after the previous step's
// send before step N is due. Step 1 is due immediately.
var DefaultWaitDays = [MaxStep]int{0, 2, 3, 4, 4}

// Campaign groups prospects sharing a template set.
type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"` // DRAFT, ACTIVE, PAUSED, ARCHIVED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCampaign(name, description string) (*Campaign, error) {
	c := &Campaign{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      CampaignDraft,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// StepTemplate is the message for one cadence step of a campaign.
// WaitDays is counted from the previous step's send (0 for step 1).
type StepTemplate struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Step       int       `json:"step"`    // 1..5
	Channel    string    `json:"channel"` // EMAIL, LINKEDIN
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	WaitDays   int       `json:"wait_days"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewStepTemplate(campaignID string, step int, channel, subject, body string, waitDays int) (*StepTemplate, error) {
	if waitDays < 0 {
		waitDays = DefaultWaitDaysFor(step)
	}

	t := &StepTemplate{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		Step:       step,
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		WaitDays:   waitDays,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *StepTemplate) Validate() error {
	if t.CampaignID == "" {
		return errors.New("campaign_id is required")
	}
	if t.Step < 1 || t.Step > MaxStep {
		return errors.New("step must be between 1 and 5")
	}
	if t.Channel != ChannelEmail && t.Channel != ChannelLinkedIn {
		return errors.New("channel must be EMAIL or LINKEDIN")
	}
	if t.Body == "" {
		return errors.New("body is required")
	}
	if t.Channel == ChannelEmail && t.Subject == "" {
		return errors.New("subject is required for EMAIL steps")
	}
	return nil
}

// DefaultWaitDaysFor returns the fallback wait for a step (0 when out of range).
func DefaultWaitDaysFor(step int) int {
	if step < 1 || step > MaxStep {
		return 0
	}
	return DefaultWaitDays[step-1]
}

// CampaignStats is the per-campaign aggregate the dashboard polls.
type CampaignStats struct {
	CampaignID     string `json:"campaign_id"`
	Total          int    `json:"total"`
	Queued         int    `json:"queued"`
	InSequence     int    `json:"in_sequence"`
	Replied        int    `json:"replied"`
	NotInterested  int    `json:"not_interested"`
	Converted      int    `json:"converted"`
	ContactedToday int    `json:"contacted_today"`
	DueToday       int    `json:"due_today"`
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, t *StepTemplate) error
	FindByID(ctx context.Context, id string) (*StepTemplate, error)
	FindByCampaignStep(ctx context.Context, campaignID string, step int) (*StepTemplate, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*StepTemplate, error)
	Update(ctx context.Context, t *StepTemplate) error
	Delete(ctx context.Context, id string) error
}
