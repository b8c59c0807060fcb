package neat

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Species represents a group of genetically similar genomes.
// Members are held as non-owning references; each genome is in at most one species.
type Species struct {
	id                int
	engine            *Engine
	representative    *Genome
	members           []*Genome
	highestFitness    float64 // best fitness ever observed, -Inf until the first evaluation
	failedGenerations int     // consecutive generations without a new best
}

// newSpecies creates a species with rep as its representative and first member.
func newSpecies(e *Engine, rep *Genome) (*Species, error) {
	s := &Species{
		id:             e.nextSpeciesID(),
		engine:         e,
		representative: rep,
		highestFitness: math.Inf(-1),
	}
	if err := rep.SetSpecies(s); err != nil {
		return nil, err
	}
	s.add(rep)
	return s, nil
}

// ID returns the species identifier, unique within its engine.
func (s *Species) ID() int { return s.id }

// Representative returns the genome new genomes are compared against.
func (s *Species) Representative() *Genome { return s.representative }

// Members returns the current members in insertion order.
func (s *Species) Members() []*Genome { return slices.Clone(s.members) }

// Size returns the member count.
func (s *Species) Size() int { return len(s.members) }

// HighestFitness returns the best fitness any member has ever reached.
func (s *Species) HighestFitness() float64 { return s.highestFitness }

// FailedGenerations returns the number of generations since the best fitness last rose.
func (s *Species) FailedGenerations() int { return s.failedGenerations }

func (s *Species) add(g *Genome) {
	if !slices.Contains(s.members, g) {
		s.members = append(s.members, g)
	}
}

func (s *Species) remove(g *Genome) {
	if i := slices.Index(s.members, g); i >= 0 {
		s.members = slices.Delete(s.members, i, i+1)
	}
}

func (s *Species) clear() {
	s.members = nil
}

// observe raises the watermark when a member beats it and resets stagnation.
func (s *Species) observe(fitness float64) {
	if fitness > s.highestFitness {
		s.highestFitness = fitness
		s.failedGenerations = 0
	}
}

// isCompatible reports whether g is within SpeciesCompatibilityDistance of the representative.
func (s *Species) isCompatible(g *Genome) (bool, error) {
	d, err := Distance(s.representative, g)
	if err != nil {
		return false, err
	}
	return d <= s.engine.Setting(SpeciesCompatibilityDistance), nil
}

// fitnesses returns the members' fitness values; every member must be evaluated.
func (s *Species) fitnesses() []float64 {
	values := make([]float64, len(s.members))
	for i, g := range s.members {
		values[i] = g.cachedFitness()
	}
	return values
}

// AverageFitness returns the mean fitness of the current members, evaluating them if needed.
func (s *Species) AverageFitness() (float64, error) {
	if len(s.members) == 0 {
		return 0, fmt.Errorf("average fitness of species %d: no members", s.id)
	}
	for _, g := range s.members {
		if _, err := g.Fitness(); err != nil {
			return 0, err
		}
	}
	return stat.Mean(s.fitnesses(), nil), nil
}

// ranked returns the members sorted by descending fitness; ties keep insertion order.
func (s *Species) ranked() []*Genome {
	ranked := slices.Clone(s.members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].cachedFitness() > ranked[j].cachedFitness()
	})
	return ranked
}

// String returns a string representation of the Species.
func (s *Species) String() string {
	return fmt.Sprintf("Species(ID: %d, Members: %d, Best: %.4f, Stagnant: %d)",
		s.id, len(s.members), s.highestFitness, s.failedGenerations)
}
