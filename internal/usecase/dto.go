package usecase

import (
	"io"
	"time"
)

type CreateProspectInput struct {
	CampaignID   string `json:"campaign_id"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	City         string `json:"city"`
	Niche        string `json:"niche"`
	Notes        string `json:"notes"`
}

type MarkSentOutput struct {
	ProspectID      string     `json:"prospect_id"`
	Status          string     `json:"status"`
	CurrentStep     int        `json:"current_step"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	NextActionDate  *time.Time `json:"next_action_date,omitempty"`
	Channel         string     `json:"channel"`
	Queued          bool       `json:"queued"` // true when a send job was published
}

type MarkRepliedInput struct {
	ResponseType   string `json:"response_type"` // INTERESTED, NOT_INTERESTED, OTHER
	Notes          string `json:"notes"`
	CreateDeal     bool   `json:"create_deal"`
	DealTitle      string `json:"deal_title"`
	DealValueCents int    `json:"deal_value_cents"`
}

type MarkRepliedOutput struct {
	ProspectID string `json:"prospect_id"`
	Status     string `json:"status"`
	ContactID  string `json:"contact_id,omitempty"`
	DealID     string `json:"deal_id,omitempty"`
}

type ImportProspectsInput struct {
	CampaignID string
	File       io.Reader
	Enrich     bool
}

type ImportProspectsOutput struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type GenerateSearchGridInput struct {
	Cities []string `json:"cities"`
	Niches []string `json:"niches"`
}

type GenerateSearchGridOutput struct {
	Created int `json:"created"`
	Total   int `json:"total"`
}
