package neat

import (
	"fmt"
	"slices"
)

// Population holds the species of the current generation. It owns the
// species; species reference their member genomes.
type Population struct {
	engine  *Engine
	species []*Species
}

func newPopulation(e *Engine) *Population {
	return &Population{engine: e}
}

// Species returns the live species in creation order.
func (p *Population) Species() []*Species { return slices.Clone(p.species) }

// AddGenome places g in the first species whose representative is within
// the compatibility distance, or founds a new species with g as its representative.
func (p *Population) AddGenome(g *Genome) error {
	for _, s := range p.species {
		ok, err := s.isCompatible(g)
		if err != nil {
			return fmt.Errorf("classify genome %d: %w", g.id, err)
		}
		if !ok {
			continue
		}
		if err := g.SetSpecies(s); err != nil {
			return err
		}
		s.add(g)
		return nil
	}

	s, err := newSpecies(p.engine, g)
	if err != nil {
		return err
	}
	p.species = append(p.species, s)
	p.engine.logger.Debug("created species", "species", s.id, "representative", g.id)
	return nil
}

// Genomes returns every live genome, grouped by species.
func (p *Population) Genomes() []*Genome {
	var all []*Genome
	for _, s := range p.species {
		all = append(all, s.members...)
	}
	return all
}

// Size returns the number of live genomes.
func (p *Population) Size() int {
	n := 0
	for _, s := range p.species {
		n += len(s.members)
	}
	return n
}

// BestPerforming returns the fittest genome, evaluating genomes as needed.
// The first genome wins a tie. It returns nil for an empty population.
func (p *Population) BestPerforming() (*Genome, error) {
	var best *Genome
	bestFitness := 0.0
	for _, g := range p.Genomes() {
		f, err := g.Fitness()
		if err != nil {
			return nil, err
		}
		if best == nil || f > bestFitness {
			best, bestFitness = g, f
		}
	}
	return best, nil
}

// removeSpecies drops s from the population.
func (p *Population) removeSpecies(s *Species) {
	if i := slices.Index(p.species, s); i >= 0 {
		p.species = slices.Delete(p.species, i, i+1)
	}
}

// removeEmpty drops species without members and returns how many were dropped.
func (p *Population) removeEmpty() int {
	before := len(p.species)
	p.species = slices.DeleteFunc(p.species, func(s *Species) bool { return len(s.members) == 0 })
	return before - len(p.species)
}
