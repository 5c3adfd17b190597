package usecase

import (
	"context"
	"log"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

func NewEnrichProspectUseCase(prospectRepo entity.ProspectRepositoryInterface, scraper SiteScraper) *EnrichProspectUseCase {
	return &EnrichProspectUseCase{
		ProspectRepo: prospectRepo,
		Scraper:      scraper,
	}
}

func (uc *EnrichProspectUseCase) Execute(ctx context.Context, prospectID string) (*entity.Prospect, error) {
	prospect, err := uc.ProspectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, NewDomainError(CodeProspectNotFound, "prospect not found")
	}

	if prospect.Website == "" {
		return nil, NewDomainError("NO_WEBSITE", "prospect has no website to enrich from")
	}

	profile, err := uc.Scraper.Fetch(ctx, prospect.Website)
	if err != nil {
		return nil, NewTechnicalError("ENRICHMENT_FAILED", err.Error())
	}

	if err := uc.ProspectRepo.UpdateEnrichment(ctx, prospect.ID, profile.Title, profile.Description); err != nil {
		return nil, err
	}

	log.Printf("🔎 Enriched %s from %s", prospect.BusinessName, prospect.Website)

	prospect.SiteTitle = profile.Title
	prospect.SiteDescription = profile.Description
	return prospect, nil
}
