package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDealNotFound = errors.New("deal not found")

// Pipeline stages, left to right on the board.
const (
	StageLead        = "LEAD"
	StageQualified   = "QUALIFIED"
	StageProposal    = "PROPOSAL"
	StageNegotiation = "NEGOTIATION"
	StageWon         = "WON"
	StageLost        = "LOST"
)

var dealStages = map[string]bool{
	StageLead:        true,
	StageQualified:   true,
	StageProposal:    true,
	StageNegotiation: true,
	StageWon:         true,
	StageLost:        true,
}

// ValidStage reports whether s is a known pipeline stage.
func ValidStage(s string) bool {
	return dealStages[s]
}

type Deal struct {
	ID                string     `json:"id"`
	ContactID         string     `json:"contact_id,omitempty"`
	Title             string     `json:"title"`
	Company           string     `json:"company,omitempty"`
	ValueCents        int        `json:"value_cents"`
	Stage             string     `json:"stage"`    // LEAD .. LOST
	Position          int        `json:"position"` // ordering inside the stage column
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewDeal(title, company, contactID string, valueCents int) (*Deal, error) {
	d := &Deal{
		ID:         uuid.New().String(),
		ContactID:  contactID,
		Title:      title,
		Company:    company,
		ValueCents: valueCents,
		Stage:      StageLead,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Deal) Validate() error {
	if d.Title == "" {
		return errors.New("title is required")
	}
	if d.ValueCents < 0 {
		return errors.New("value_cents must not be negative")
	}
	if !ValidStage(d.Stage) {
		return errors.New("invalid stage")
	}
	return nil
}

// InSlot reports whether the deal already sits on that stage and position.
// A move onto its own slot is a no-op for the board.
func (d *Deal) InSlot(stage string, position int) bool {
	return d.Stage == stage && d.Position == position
}

type DealRepository interface {
	Create(ctx context.Context, d *Deal) error
	FindByID(ctx context.Context, id string) (*Deal, error)
	List(ctx context.Context, stage string) ([]*Deal, error)
	Update(ctx context.Context, d *Deal) error
	Move(ctx context.Context, id, stage string, position int) (*Deal, error)
	Delete(ctx context.Context, id string) error
}
