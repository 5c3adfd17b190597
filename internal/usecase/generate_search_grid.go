package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

// DefaultCities and DefaultNiches are used when a generate request leaves
// the lists empty. They are loaded from the seeds file at startup.
func NewGenerateSearchGridUseCase(repo entity.SearchComboRepositoryInterface, defaultCities, defaultNiches []string) *GenerateSearchGridUseCase {
	return &GenerateSearchGridUseCase{
		Repo:          repo,
		DefaultCities: defaultCities,
		DefaultNiches: defaultNiches,
	}
}

func (uc *GenerateSearchGridUseCase) Execute(ctx context.Context, input GenerateSearchGridInput) (*GenerateSearchGridOutput, error) {
	cities := cleanTerms(input.Cities)
	if len(cities) == 0 {
		cities = uc.DefaultCities
	}
	niches := cleanTerms(input.Niches)
	if len(niches) == 0 {
		niches = uc.DefaultNiches
	}

	if len(cities) == 0 || len(niches) == 0 {
		return nil, NewDomainError("EMPTY_GRID", "cities and niches are both required")
	}

	var combos []*entity.SearchCombo
	for _, city := range cities {
		for _, niche := range niches {
			combo, err := entity.NewSearchCombo(city, niche)
			if err != nil {
				continue
			}
			combos = append(combos, combo)
		}
	}

	created, err := uc.Repo.BulkUpsert(ctx, combos)
	if err != nil {
		return nil, NewTechnicalError("GRID_GENERATE_FAILED", err.Error())
	}

	log.Printf("🗺️ Search grid generated: %d new combos out of %d", created, len(combos))

	return &GenerateSearchGridOutput{Created: created, Total: len(combos)}, nil
}

func cleanTerms(terms []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
