package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

func NewImportProspectsUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	campaignRepo entity.CampaignRepositoryInterface,
	scraper SiteScraper,
) *ImportProspectsUseCase {
	return &ImportProspectsUseCase{
		ProspectRepo: prospectRepo,
		CampaignRepo: campaignRepo,
		Scraper:      scraper,
	}
}

func (uc *ImportProspectsUseCase) Execute(ctx context.Context, input ImportProspectsInput) (*ImportProspectsOutput, error) {
	// 1. The campaign must exist before anything is parsed
	if _, err := uc.CampaignRepo.FindByID(ctx, input.CampaignID); err != nil {
		return nil, NewDomainError(CodeCampaignNotFound, "campaign not found")
	}

	// 2. Parse the CSV. Header order is free; business_name must be present.
	reader := csv.NewReader(input.File)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, NewDomainError(CodeEmptyFile, "file has no rows")
	}
	if err != nil {
		return nil, NewTechnicalError("CSV_PARSE_FAILED", err.Error())
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["business_name"]; !ok {
		return nil, NewDomainError(CodeEmptyFile, "missing business_name column")
	}

	output := &ImportProspectsOutput{}
	var prospects []*entity.Prospect

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			output.Skipped++
			output.Errors = append(output.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		rowInput := CreateProspectInput{
			CampaignID:   input.CampaignID,
			BusinessName: field(record, columns, "business_name"),
			ContactName:  field(record, columns, "contact_name"),
			Email:        field(record, columns, "email"),
			Phone:        field(record, columns, "phone"),
			Website:      field(record, columns, "website"),
			City:         field(record, columns, "city"),
			Niche:        field(record, columns, "niche"),
		}

		if errs := ValidateCreateProspectInput(rowInput); len(errs) > 0 {
			output.Skipped++
			output.Errors = append(output.Errors, fmt.Sprintf("row %d: %s", rowNum, errs[0].Error()))
			continue
		}

		prospect, err := entity.NewProspect(
			rowInput.CampaignID,
			rowInput.BusinessName,
			rowInput.ContactName,
			rowInput.Email,
			rowInput.Phone,
			rowInput.Website,
			rowInput.City,
			rowInput.Niche,
		)
		if err != nil {
			output.Skipped++
			output.Errors = append(output.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		prospects = append(prospects, prospect)
	}

	// 3. Files with only a header (or only bad rows) are rejected outright
	if rowNum == 1 {
		return nil, NewDomainError(CodeEmptyFile, "file has no data rows")
	}
	if len(prospects) == 0 {
		return output, nil
	}

	// 4. Insert the batch; duplicates within the campaign are skipped
	inserted, err := uc.ProspectRepo.BulkInsert(ctx, prospects)
	if err != nil {
		return nil, NewTechnicalError("IMPORT_FAILED", err.Error())
	}
	output.Imported = inserted
	output.Skipped += len(prospects) - inserted

	log.Printf("📥 Imported %d prospects into campaign %s (%d skipped)", output.Imported, input.CampaignID, output.Skipped)

	// 5. Enrichment runs in the background so the upload returns fast
	if input.Enrich && uc.Scraper != nil {
		go uc.enrichBatch(prospects)
	}

	return output, nil
}

func (uc *ImportProspectsUseCase) enrichBatch(prospects []*entity.Prospect) {
	ctx := context.Background()

	for _, p := range prospects {
		if p.Website == "" {
			continue
		}
		profile, err := uc.Scraper.Fetch(ctx, p.Website)
		if err != nil {
			log.Printf("⚠️ Enrichment failed for %s: %v", p.BusinessName, err)
			continue
		}
		if err := uc.ProspectRepo.UpdateEnrichment(ctx, p.ID, profile.Title, profile.Description); err != nil {
			log.Printf("⚠️ Could not store enrichment for %s: %v", p.BusinessName, err)
		}
	}
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
