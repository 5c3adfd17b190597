package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrComboNotFound = errors.New("search combo not found")

// SearchCombo is one cell of the prospecting grid: a city paired with a
// niche, checked off once that search has been worked.
type SearchCombo struct {
	ID         string     `json:"id"`
	City       string     `json:"city"`
	Niche      string     `json:"niche"`
	Searched   bool       `json:"searched"`
	SearchedAt *time.Time `json:"searched_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewSearchCombo(city, niche string) (*SearchCombo, error) {
	c := &SearchCombo{
		ID:        uuid.New().String(),
		City:      strings.TrimSpace(city),
		Niche:     strings.TrimSpace(niche),
		CreatedAt: time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *SearchCombo) Validate() error {
	if c.City == "" {
		return errors.New("city is required")
	}
	if c.Niche == "" {
		return errors.New("niche is required")
	}
	return nil
}

// Toggle flips the searched flag, stamping searched_at on the way up and
// clearing it on the way down.
func (c *SearchCombo) Toggle() {
	c.Searched = !c.Searched
	if c.Searched {
		now := time.Now()
		c.SearchedAt = &now
	} else {
		c.SearchedAt = nil
	}
}

// SearchGridStats summarizes grid coverage.
type SearchGridStats struct {
	Total     int `json:"total"`
	Searched  int `json:"searched"`
	Remaining int `json:"remaining"`
}

type SearchComboRepositoryInterface interface {
	BulkUpsert(ctx context.Context, combos []*SearchCombo) (int, error)
	FindByID(ctx context.Context, id string) (*SearchCombo, error)
	List(ctx context.Context, city, niche string, searched *bool) ([]*SearchCombo, error)
	Update(ctx context.Context, c *SearchCombo) error
	ResetAll(ctx context.Context, city string) (int, error)
	Stats(ctx context.Context) (*SearchGridStats, error)
}
