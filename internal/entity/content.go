package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContentNotFound = errors.New("content piece not found")

const (
	ContentIdea      = "IDEA"
	ContentDraft     = "DRAFT"
	ContentScheduled = "SCHEDULED"
	ContentPublished = "PUBLISHED"
)

var contentChannels = map[string]bool{
	"BLOG":       true,
	"YOUTUBE":    true,
	"LINKEDIN":   true,
	"NEWSLETTER": true,
	"TWITTER":    true,
}

var contentStatuses = map[string]bool{
	ContentIdea:      true,
	ContentDraft:     true,
	ContentScheduled: true,
	ContentPublished: true,
}

func ValidContentChannel(channel string) bool {
	return contentChannels[channel]
}

func ValidContentStatus(status string) bool {
	return contentStatuses[status]
}

// ContentPiece is a calendar entry for a publication (post, video, issue).
type ContentPiece struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Channel     string     `json:"channel"` // BLOG, YOUTUBE, LINKEDIN, NEWSLETTER, TWITTER
	Status      string     `json:"status"`  // IDEA, DRAFT, SCHEDULED, PUBLISHED
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewContentPiece(title, channel string, scheduledAt *time.Time) (*ContentPiece, error) {
	c := &ContentPiece{
		ID:          uuid.New().String(),
		Title:       title,
		Channel:     channel,
		Status:      ContentIdea,
		ScheduledAt: scheduledAt,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *ContentPiece) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if !ValidContentChannel(c.Channel) {
		return errors.New("invalid channel")
	}
	if c.Status != "" && !ValidContentStatus(c.Status) {
		return errors.New("invalid status")
	}
	return nil
}

// MarkPublished stamps published_at the first time the piece reaches
// PUBLISHED; re-publishing keeps the original timestamp.
func (c *ContentPiece) MarkPublished() {
	if c.Status != ContentPublished {
		now := time.Now()
		c.PublishedAt = &now
	}
	c.Status = ContentPublished
	c.UpdatedAt = time.Now()
}

// ContentFilter narrows calendar queries to a window and/or channel.
type ContentFilter struct {
	From    *time.Time
	To      *time.Time
	Channel string
	Status  string
}

type ContentRepository interface {
	Create(ctx context.Context, c *ContentPiece) error
	FindByID(ctx context.Context, id string) (*ContentPiece, error)
	List(ctx context.Context, filter ContentFilter) ([]*ContentPiece, error)
	Update(ctx context.Context, c *ContentPiece) error
	Delete(ctx context.Context, id string) error
}
