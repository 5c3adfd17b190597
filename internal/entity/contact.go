package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContactNotFound = errors.New("contact not found")

// How a contact entered the CRM.
const (
	SourceManual   = "MANUAL"
	SourceOutreach = "OUTREACH"
)

type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
	Source  string `json:"source"` // MANUAL, OUTREACH
	Notes   string `json:"notes,omitempty"`

	// Set when the contact came out of an outreach conversion.
	ProspectID string `json:"prospect_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContact(name, email, phone, company, role, source string) (*Contact, error) {
	if source == "" {
		source = SourceManual
	}

	c := &Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Role:      role,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Source != SourceManual && c.Source != SourceOutreach {
		return errors.New("source must be MANUAL or OUTREACH")
	}
	return nil
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, search string) ([]*Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id string) error
}
