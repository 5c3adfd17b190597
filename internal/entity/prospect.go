package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProspectNotFound  = errors.New("prospect not found")
	ErrDuplicateProspect = errors.New("prospect already exists in this campaign")
)

// Prospect statuses. Transitions are one-directional; there is no reset.
const (
	StatusQueued        = "QUEUED"
	StatusInSequence    = "IN_SEQUENCE"
	StatusReplied       = "REPLIED"
	StatusNotInterested = "NOT_INTERESTED"
	StatusConverted     = "CONVERTED"
)

// MaxStep is the last step of the outreach cadence.
const MaxStep = 5

// Allowed status transitions. IN_SEQUENCE -> IN_SEQUENCE covers repeat sends.
var prospectTransitions = map[string]map[string]bool{
	StatusQueued:        {StatusInSequence: true},
	StatusInSequence:    {StatusInSequence: true, StatusReplied: true, StatusNotInterested: true, StatusConverted: true},
	StatusReplied:       {StatusConverted: true, StatusNotInterested: true},
	StatusNotInterested: {},
	StatusConverted:     {},
}

type Prospect struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaign_id"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	City         string `json:"city,omitempty"`
	Niche        string `json:"niche,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Status          string     `json:"status"`       // QUEUED, IN_SEQUENCE, REPLIED, NOT_INTERESTED, CONVERTED
	CurrentStep     int        `json:"current_step"` // 1..5, only ever increases
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	NextActionDate  *time.Time `json:"next_action_date,omitempty"`

	// Filled by website enrichment.
	SiteTitle       string `json:"site_title,omitempty"`
	SiteDescription string `json:"site_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProspect creates a prospect at the start of the cadence (QUEUED, step 1).
func NewProspect(campaignID, businessName, contactName, email, phone, website, city, niche string) (*Prospect, error) {
	p := &Prospect{
		ID:           uuid.New().String(),
		CampaignID:   campaignID,
		BusinessName: businessName,
		ContactName:  contactName,
		Email:        email,
		Phone:        phone,
		Website:      website,
		City:         city,
		Niche:        niche,

		Status:      StatusQueued,
		CurrentStep: 1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Prospect) Validate() error {
	if p.CampaignID == "" {
		return errors.New("campaign_id is required")
	}
	if p.BusinessName == "" {
		return errors.New("business_name is required")
	}
	if p.Email == "" && p.Phone == "" && p.Website == "" {
		return errors.New("at least one of email, phone or website is required")
	}
	return nil
}

// CanTransitionTo reports whether the lifecycle allows moving to status.
func (p *Prospect) CanTransitionTo(status string) bool {
	nexts, ok := prospectTransitions[p.Status]
	if !ok {
		return false
	}
	return nexts[status]
}

// IsTerminal reports whether the prospect left the sequence for good.
func (p *Prospect) IsTerminal() bool {
	return p.Status == StatusNotInterested || p.Status == StatusConverted
}

// SequenceExhausted reports whether step 5 has already been sent.
// The step pointer caps at 5, so "sent" is marked by a contacted prospect
// with no next action scheduled.
func (p *Prospect) SequenceExhausted() bool {
	return p.CurrentStep == MaxStep && p.LastContactedAt != nil && p.NextActionDate == nil
}

// CanMarkSent reports whether the current step may be sent.
func (p *Prospect) CanMarkSent() bool {
	if p.Status != StatusQueued && p.Status != StatusInSequence {
		return false
	}
	return !p.SequenceExhausted()
}

// ContactedOnce reports whether at least one step went out — the
// precondition for capturing a reply.
func (p *Prospect) ContactedOnce() bool {
	return p.LastContactedAt != nil
}

// ProspectFilter narrows List queries; zero values mean "any".
type ProspectFilter struct {
	CampaignID string
	Status     string
	City       string
	Niche      string
}

type ProspectRepositoryInterface interface {
	Create(ctx context.Context, p *Prospect) error
	BulkInsert(ctx context.Context, prospects []*Prospect) (int, error)
	FindByID(ctx context.Context, id string) (*Prospect, error)
	List(ctx context.Context, filter ProspectFilter) ([]*Prospect, error)
	TodayQueue(ctx context.Context, campaignID string) ([]*Prospect, error)
	Update(ctx context.Context, p *Prospect) error
	Delete(ctx context.Context, id string) error

	// AdvanceStep is the single place the cadence moves forward: guarded,
	// atomic, returns the refreshed prospect.
	AdvanceStep(ctx context.Context, id string, nextAction *time.Time) (*Prospect, error)
	SetOutcome(ctx context.Context, id, status, notes string) error
	UpdateEnrichment(ctx context.Context, id, title, description string) error
	Stats(ctx context.Context, campaignID string) (*CampaignStats, error)
}
