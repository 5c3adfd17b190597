package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 500
)

// SiteProfile holds what could be read off a prospect's website.
type SiteProfile struct {
	Title       string
	Description string
	Heading     string
}

// Scraper fetches a prospect's homepage and extracts its public profile.
type Scraper struct {
	client *http.Client
}

func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Scraper{client: client}
}

func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*SiteProfile, error) {
	doc, err := s.fetchDocument(ctx, normalizeURL(rawURL))
	if err != nil {
		return nil, err
	}

	return extractProfile(doc), nil
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "personalApp-crm/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("site returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractProfile(doc *goquery.Document) *SiteProfile {
	title := strings.TrimSpace(doc.Find("title").First().Text())

	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	if description == "" {
		description, _ = doc.Find(`meta[property="og:description"]`).First().Attr("content")
	}

	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = heading
	}

	return &SiteProfile{
		Title:       truncate(title, maxTitleLen),
		Description: truncate(strings.TrimSpace(description), maxDescriptionLen),
		Heading:     truncate(heading, maxTitleLen),
	}
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return raw
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
