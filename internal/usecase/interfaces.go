package usecase

import (
	"context"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/enrichment"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishSendStep(ctx context.Context, payload queue.SendStepPayload) error
}

// SiteScraper pulls the public profile (title, description) of a website.
type SiteScraper interface {
	Fetch(ctx context.Context, rawURL string) (*enrichment.SiteProfile, error)
}

type MarkSentUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	TemplateRepo entity.TemplateRepositoryInterface
	Queue        QueueProducerInterface
}

type MarkRepliedUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	ContactRepo  entity.ContactRepositoryInterface
	DealRepo     entity.DealRepository
}

type ImportProspectsUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	CampaignRepo entity.CampaignRepositoryInterface
	Scraper      SiteScraper
}

type EnrichProspectUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	Scraper      SiteScraper
}

type GenerateSearchGridUseCase struct {
	Repo          entity.SearchComboRepositoryInterface
	DefaultCities []string
	DefaultNiches []string
}
