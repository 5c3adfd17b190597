package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSeedsWithoutPathUsesDefaults(t *testing.T) {
	seeds := LoadSeeds("")

	assert.NotEmpty(t, seeds.Planner.Cities)
	assert.NotEmpty(t, seeds.Planner.Niches)
	assert.Equal(t, []int{0, 2, 3, 4, 4}, seeds.Cadence.WaitDays)
}

func TestLoadSeedsMissingFileFallsBackToDefaults(t *testing.T) {
	seeds := LoadSeeds("/nonexistent/seeds.yaml")

	assert.Equal(t, defaultSeeds(), seeds)
}

func TestLoadSeedsOverridesOnlyWhatTheFileSets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	content := `
planner:
  cities:
    - Austin
    - Dallas
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seeds := LoadSeeds(path)

	assert.Equal(t, []string{"Austin", "Dallas"}, seeds.Planner.Cities)
	// Untouched sections keep their defaults.
	assert.Equal(t, defaultSeeds().Planner.Niches, seeds.Planner.Niches)
	assert.Equal(t, defaultSeeds().Cadence.WaitDays, seeds.Cadence.WaitDays)
}

func TestLoadSeedsMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("planner: ["), 0o644))

	seeds := LoadSeeds(path)
	assert.Equal(t, defaultSeeds(), seeds)
}
