package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

func importUseCase(prospectRepo *MockProspectRepository, campaignRepo *MockCampaignRepository) *ImportProspectsUseCase {
	return NewImportProspectsUseCase(prospectRepo, campaignRepo, nil)
}

func campaignExists(campaignRepo *MockCampaignRepository) {
	campaignRepo.On("FindByID", mock.Anything, "camp-1").Return(&entity.Campaign{ID: "camp-1", Name: "Plumbers"}, nil)
}

func TestImportRejectsUnknownCampaign(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	campaignRepo.On("FindByID", mock.Anything, "camp-1").Return(nil, entity.ErrCampaignNotFound)

	uc := importUseCase(new(MockProspectRepository), campaignRepo)
	_, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader("business_name,email\nAcme,jo@acme.com\n"),
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeCampaignNotFound, domainErr.Code)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	campaignExists(campaignRepo)

	uc := importUseCase(new(MockProspectRepository), campaignRepo)
	_, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader(""),
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeEmptyFile, domainErr.Code)
}

func TestImportRejectsHeaderOnlyFile(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	campaignExists(campaignRepo)

	uc := importUseCase(new(MockProspectRepository), campaignRepo)
	_, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader("business_name,contact_name,email,phone,website,city,niche\n"),
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeEmptyFile, domainErr.Code)
}

func TestImportRequiresBusinessNameColumn(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	campaignExists(campaignRepo)

	uc := importUseCase(new(MockProspectRepository), campaignRepo)
	_, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader("name,email\nAcme,jo@acme.com\n"),
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeEmptyFile, domainErr.Code)
}

func TestImportInsertsValidRowsAndReportsBadOnes(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	campaignRepo := new(MockCampaignRepository)
	campaignExists(campaignRepo)

	csv := strings.Join([]string{
		"business_name,contact_name,email,phone,website,city,niche",
		"Acme Plumbing,Jo,jo@acme.com,,,Austin,plumbers",
		",Missing Name,x@y.com,,,,", // no business_name
		"Dry Cleaners Co,,not-an-email,,,Dallas,cleaners", // bad email
		"Roof Right,Sam,sam@roofright.com,,roofright.com,Austin,roofers",
	}, "\n")

	prospectRepo.On("BulkInsert", mock.Anything, mock.MatchedBy(func(batch []*entity.Prospect) bool {
		return len(batch) == 2 &&
			batch[0].BusinessName == "Acme Plumbing" &&
			batch[1].BusinessName == "Roof Right" &&
			batch[0].Status == entity.StatusQueued
	})).Return(2, nil)

	uc := importUseCase(prospectRepo, campaignRepo)
	output, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader(csv),
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, output.Imported)
	assert.Equal(t, 2, output.Skipped)
	assert.Len(t, output.Errors, 2)
	prospectRepo.AssertExpectations(t)
}

func TestImportCountsDatabaseDuplicatesAsSkipped(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	campaignRepo := new(MockCampaignRepository)
	campaignExists(campaignRepo)

	csv := strings.Join([]string{
		"business_name,email",
		"Acme Plumbing,jo@acme.com",
		"Acme Again,jo@acme.com",
	}, "\n")

	// The second row collides on (campaign, email) and is dropped by the upsert.
	prospectRepo.On("BulkInsert", mock.Anything, mock.Anything).Return(1, nil)

	uc := importUseCase(prospectRepo, campaignRepo)
	output, err := uc.Execute(context.Background(), ImportProspectsInput{
		CampaignID: "camp-1",
		File:       strings.NewReader(csv),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.Imported)
	assert.Equal(t, 1, output.Skipped)
}
