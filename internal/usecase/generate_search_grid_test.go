package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

func TestGenerateGridBuildsCrossProduct(t *testing.T) {
	repo := new(MockSearchComboRepository)

	repo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(combos []*entity.SearchCombo) bool {
		return len(combos) == 6 &&
			combos[0].City == "Austin" && combos[0].Niche == "plumbers" &&
			combos[5].City == "Dallas" && combos[5].Niche == "dentists"
	})).Return(6, nil)

	uc := NewGenerateSearchGridUseCase(repo, nil, nil)
	output, err := uc.Execute(context.Background(), GenerateSearchGridInput{
		Cities: []string{"Austin", "Dallas"},
		Niches: []string{"plumbers", "roofers", "dentists"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, output.Created)
	assert.Equal(t, 6, output.Total)
	repo.AssertExpectations(t)
}

func TestGenerateGridFallsBackToSeedDefaults(t *testing.T) {
	repo := new(MockSearchComboRepository)
	repo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(combos []*entity.SearchCombo) bool {
		return len(combos) == 2
	})).Return(2, nil)

	uc := NewGenerateSearchGridUseCase(repo, []string{"Austin"}, []string{"plumbers", "roofers"})
	output, err := uc.Execute(context.Background(), GenerateSearchGridInput{})

	assert.NoError(t, err)
	assert.Equal(t, 2, output.Total)
}

func TestGenerateGridDeduplicatesAndTrimsTerms(t *testing.T) {
	repo := new(MockSearchComboRepository)
	repo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(combos []*entity.SearchCombo) bool {
		return len(combos) == 1 && combos[0].City == "Austin"
	})).Return(1, nil)

	uc := NewGenerateSearchGridUseCase(repo, nil, nil)
	output, err := uc.Execute(context.Background(), GenerateSearchGridInput{
		Cities: []string{" Austin ", "austin", ""},
		Niches: []string{"plumbers", "Plumbers"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.Total)
}

func TestGenerateGridWithNoTermsAnywhereFails(t *testing.T) {
	uc := NewGenerateSearchGridUseCase(new(MockSearchComboRepository), nil, nil)
	_, err := uc.Execute(context.Background(), GenerateSearchGridInput{})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_GRID", domainErr.Code)
}

func TestGenerateGridReportsExistingCombos(t *testing.T) {
	repo := new(MockSearchComboRepository)
	// 3 of 4 cells already exist; the upsert only creates the new one.
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(1, nil)

	uc := NewGenerateSearchGridUseCase(repo, nil, nil)
	output, err := uc.Execute(context.Background(), GenerateSearchGridInput{
		Cities: []string{"Austin", "Dallas"},
		Niches: []string{"plumbers", "roofers"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.Created)
	assert.Equal(t, 4, output.Total)
}
