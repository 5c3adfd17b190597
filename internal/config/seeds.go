package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Seeds carries workspace defaults that are data, not code: the search
// planner grid inputs and the cadence wait days a new campaign inherits.
type Seeds struct {
	Planner PlannerSeeds `yaml:"planner"`
	Cadence CadenceSeeds `yaml:"cadence"`
}

// PlannerSeeds lists the cities and niches the search grid is built from.
type PlannerSeeds struct {
	Cities []string `yaml:"cities"`
	Niches []string `yaml:"niches"`
}

// CadenceSeeds sets the default wait days per outreach step.
type CadenceSeeds struct {
	WaitDays []int `yaml:"waitDays"`
}

// LoadSeeds reads the YAML seeds file (if configured) and falls back to
// built-in defaults for anything the file omits.
func LoadSeeds(path string) Seeds {
	seeds := defaultSeeds()

	if path == "" {
		return seeds
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: cannot read seeds file %s: %v (using defaults)", path, err)
		return seeds
	}

	var fileSeeds Seeds
	if err := yaml.Unmarshal(raw, &fileSeeds); err != nil {
		log.Printf("config: cannot parse seeds file %s: %v (using defaults)", path, err)
		return seeds
	}

	return mergeSeeds(seeds, fileSeeds)
}

func mergeSeeds(base, override Seeds) Seeds {
	if len(override.Planner.Cities) > 0 {
		base.Planner.Cities = override.Planner.Cities
	}
	if len(override.Planner.Niches) > 0 {
		base.Planner.Niches = override.Planner.Niches
	}
	if len(override.Cadence.WaitDays) > 0 {
		base.Cadence.WaitDays = override.Cadence.WaitDays
	}
	return base
}

func defaultSeeds() Seeds {
	return Seeds{
		Planner: PlannerSeeds{
			Cities: []string{"Toronto", "Mississauga", "Brampton", "Hamilton", "Oakville"},
			Niches: []string{"plumbers", "roofers", "landscapers", "electricians", "hvac"},
		},
		Cadence: CadenceSeeds{
			WaitDays: []int{0, 2, 3, 4, 4},
		},
	}
}
