package neat

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Setting identifies one tunable parameter of the engine.
type Setting int

const (
	// GeneDisableChance is the chance that a gene disabled in exactly one parent is disabled in the child.
	GeneDisableChance Setting = iota
	// MutationWeightChance is the chance that a genome's weights are mutated.
	MutationWeightChance
	// MutationWeightRandomChance is the chance that a weight mutation assigns fresh random weights.
	MutationWeightRandomChance
	// MutationWeightMaxDisturbance bounds the uniform perturbation applied to each weight.
	MutationWeightMaxDisturbance
	// MutationNewConnectionChance is the chance of a link-add mutation.
	MutationNewConnectionChance
	// MutationNewNodeChance is the chance of a node-add mutation.
	MutationNewNodeChance
	// DistanceExcessWeight is c1 in the compatibility distance.
	DistanceExcessWeight
	// DistanceDisjointWeight is c2 in the compatibility distance.
	DistanceDisjointWeight
	// DistanceWeightsWeight is c3 in the compatibility distance.
	DistanceWeightsWeight
	// SpeciesCompatibilityDistance is the largest distance to a representative that still joins its species.
	SpeciesCompatibilityDistance
	// GenerationEliminationPercentage is the fraction of each species culled per generation.
	GenerationEliminationPercentage
	// BreedCrossChance is the chance a child is bred by crossover instead of clone-and-mutate.
	BreedCrossChance
	// MutationWeightChanceRandomRange is R: random weights are drawn from [-R, R].
	MutationWeightChanceRandomRange
	// SpeciesMaxStagnation is the number of generations without improvement a species survives.
	SpeciesMaxStagnation

	numSettings
)

type settingInfo struct {
	name        string
	value       float64
	probability bool
}

var settingTable = [numSettings]settingInfo{
	GeneDisableChance:               {"gene_disable_chance", 0.75, true},
	MutationWeightChance:            {"mutation_weight_chance", 0.80, true},
	MutationWeightRandomChance:      {"mutation_weight_random_chance", 0.10, true},
	MutationWeightMaxDisturbance:    {"mutation_weight_max_disturbance", 0.25, false},
	MutationNewConnectionChance:     {"mutation_new_connection_chance", 0.05, true},
	MutationNewNodeChance:           {"mutation_new_node_chance", 0.03, true},
	DistanceExcessWeight:            {"distance_excess_weight", 1.0, false},
	DistanceDisjointWeight:          {"distance_disjoint_weight", 1.0, false},
	DistanceWeightsWeight:           {"distance_weights_weight", 0.4, false},
	SpeciesCompatibilityDistance:    {"species_compatibility_distance", 0.8, false},
	GenerationEliminationPercentage: {"generation_elimination_percentage", 0.90, true},
	BreedCrossChance:                {"breed_cross_chance", 0.75, true},
	MutationWeightChanceRandomRange: {"mutation_weight_chance_random_range", 5.0, false},
	SpeciesMaxStagnation:            {"species_max_stagnation", 15, false},
}

// AllSettings returns every setting key in declaration order.
func AllSettings() []Setting {
	keys := make([]Setting, numSettings)
	for i := range keys {
		keys[i] = Setting(i)
	}
	return keys
}

// ParseSetting looks a setting up by its name, ignoring case
// (e.g. "gene_disable_chance" or "GENE_DISABLE_CHANCE").
func ParseSetting(name string) (Setting, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range settingTable {
		if info.name == name {
			return Setting(i), true
		}
	}
	return 0, false
}

func (s Setting) valid() bool {
	return s >= 0 && s < numSettings
}

func (s Setting) String() string {
	if !s.valid() {
		return fmt.Sprintf("Setting(%d)", int(s))
	}
	return settingTable[s].name
}

// Default returns the value a new Settings table starts with.
func (s Setting) Default() float64 {
	if !s.valid() {
		panic(fmt.Sprintf("neat: unknown setting %d", int(s)))
	}
	return settingTable[s].value
}

// Settings is the engine's table of tunable values, seeded from defaults.
// Changes take effect the next time a value is read.
type Settings struct {
	mu     sync.RWMutex
	values [numSettings]float64
}

// DefaultSettings returns a table holding every default value.
func DefaultSettings() *Settings {
	s := &Settings{}
	for i, info := range settingTable {
		s.values[i] = info.value
	}
	return s
}

// Get returns the current value of key.
func (s *Settings) Get(key Setting) float64 {
	if !key.valid() {
		panic(fmt.Sprintf("neat: unknown setting %d", int(key)))
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set replaces the value of key. A value outside the key's range is
// rejected and the table is left unchanged.
func (s *Settings) Set(key Setting, value float64) error {
	if !key.valid() {
		panic(fmt.Sprintf("neat: unknown setting %d", int(key)))
	}
	if err := checkValue(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Clone returns an independent copy of the table.
func (s *Settings) Clone() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Settings{values: s.values}
}

// Validate checks every value against its key's range.
func (s *Settings) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, v := range s.values {
		if err := checkValue(Setting(i), v); err != nil {
			return err
		}
	}
	return nil
}

// checkValue applies the range of key: probabilities lie in [0, 1], ranges
// and weights are not negative and the stagnation limit is at least 1.
func checkValue(key Setting, v float64) error {
	info := settingTable[key]
	switch {
	case math.IsNaN(v):
		return fmt.Errorf("config error: %s is not a number", info.name)
	case info.probability && (v < 0 || v > 1):
		return fmt.Errorf("config error: %s must be between 0 and 1, got %g", info.name, v)
	case v < 0:
		return fmt.Errorf("config error: %s cannot be negative, got %g", info.name, v)
	case key == SpeciesMaxStagnation && v < 1:
		return fmt.Errorf("config error: %s must be at least 1", info.name)
	}
	return nil
}
