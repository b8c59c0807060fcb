package neat

import (
	"fmt"
	"slices"
	"time"
)

// PopulationManager drives the generational loop: fitness realization,
// culling, breeding and re-speciation.
type PopulationManager struct {
	engine      *Engine
	population  *Population
	size        int
	generation  int
	initialized bool
	best        *Genome
	history     []GenerationStats
}

func newPopulationManager(e *Engine) *PopulationManager {
	return &PopulationManager{
		engine:     e,
		population: newPopulation(e),
	}
}

// Population returns the current generation.
func (m *PopulationManager) Population() *Population { return m.population }

// PopulationSize returns the target number of genomes per generation.
func (m *PopulationManager) PopulationSize() int { return m.size }

// Generation returns the number of completed generations.
func (m *PopulationManager) Generation() int { return m.generation }

// Best returns the fittest genome of the latest generation, or nil before the first one.
func (m *PopulationManager) Best() *Genome { return m.best }

// Stats returns one row per completed generation.
func (m *PopulationManager) Stats() []GenerationStats { return slices.Clone(m.history) }

// Initialize fills the population with size clones of a fully connected
// input->output template, each with independently drawn weights in [-R, R].
func (m *PopulationManager) Initialize(size int) error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	if size <= 0 {
		return fmt.Errorf("population size must be positive, got %d", size)
	}
	m.size = size

	template, err := m.template()
	if err != nil {
		return err
	}
	e := m.engine
	r := e.Setting(MutationWeightChanceRandomRange)
	for i := 0; i < size; i++ {
		g := template.Clone()
		for _, gene := range g.Genes() {
			gene.weight = e.rng.Range(-r, r)
		}
		if err := m.population.AddGenome(g); err != nil {
			return err
		}
	}
	m.initialized = true
	e.logger.Info("population initialized", "size", size, "species", len(m.population.species))
	return nil
}

// template builds the genome connecting every input to every output.
func (m *PopulationManager) template() (*Genome, error) {
	e := m.engine
	inputs := make([]int, e.inputSize)
	for i := range inputs {
		inputs[i] = i + 1
	}
	outputs := make([]int, e.outputSize)
	for i := range outputs {
		outputs[i] = e.inputSize + i + 1
	}

	r := e.Setting(MutationWeightChanceRandomRange)
	g := newGenome(e, inputs, outputs)
	for _, in := range inputs {
		for _, out := range outputs {
			if err := g.AddGene(NewGene(e.nextInnovation(), in, out, e.rng.Range(-r, r)), nil, nil); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// NewGeneration performs one generational transition.
//
//  1. Realize the fitness of every genome.
//  2. Sum the average fitness of all species.
//  3. Cull each species to its best members, then drop it if it has been
//     stagnant too long or earns no breeding slot.
//  4. Snapshot the survivors as breeding pools and clear membership.
//  5. Breed until the population is full, by crossover or clone-and-mutate.
//  6. Drop empty species.
//  7. Pick a new random representative per species.
//  8. Realize the new generation's fitness and record the best genome.
//
// ErrExtinct is returned when no species survives.
func (m *PopulationManager) NewGeneration() error {
	if !m.initialized {
		return ErrNotInitialized
	}
	e := m.engine
	p := m.population
	rng := e.rng
	m.generation++
	start := time.Now()

	if err := e.realizeFitness(p.Genomes()); err != nil {
		return fmt.Errorf("generation %d: %w", m.generation, err)
	}

	total := 0.0
	for _, s := range p.species {
		avg, err := s.AverageFitness()
		if err != nil {
			return fmt.Errorf("generation %d: %w", m.generation, err)
		}
		total += avg
	}

	pct := e.Setting(GenerationEliminationPercentage)
	limit := int(e.Setting(SpeciesMaxStagnation))
	speciesCount := len(p.species)
	pools := make(map[*Species][]*Genome, speciesCount)
	for _, s := range p.Species() {
		survivors := s.cull(pct)
		if s.stagnate(limit) {
			e.logger.Debug("species removed", "species", s.id, "reason", "stagnation", "generations", s.failedGenerations)
			p.removeSpecies(s)
			continue
		}
		avg, err := s.AverageFitness()
		if err != nil {
			return fmt.Errorf("generation %d: %w", m.generation, err)
		}
		if quota := breedingQuota(avg, total, m.size, speciesCount); quota < 1 {
			e.logger.Debug("species removed", "species", s.id, "reason", "no breeding slots", "quota", quota)
			p.removeSpecies(s)
			continue
		}
		pools[s] = survivors
	}
	if len(p.species) == 0 {
		return fmt.Errorf("generation %d: %w", m.generation, ErrExtinct)
	}

	breeders := p.Species()
	count := 0
	for _, s := range breeders {
		s.clear()
		if e.elitism {
			s.add(pools[s][0])
			count++
		}
	}
	e.logger.Debug("breeding", "generation", m.generation, "species", len(breeders), "survivors", survivorCount(pools))

	crossChance := e.Setting(BreedCrossChance)
	for count < m.size {
		s := pick(rng, breeders)
		pool := pools[s]
		if chance(rng, crossChance) {
			father := pick(rng, pool)
			mother := pick(rng, pool)
			if _, err := p.CrossAndAdd(father, mother); err != nil {
				return fmt.Errorf("generation %d: %w", m.generation, err)
			}
		} else {
			child := pick(rng, pool).Clone()
			if err := child.Mutate(); err != nil {
				return fmt.Errorf("generation %d: %w", m.generation, err)
			}
			s.add(child)
		}
		count++
	}

	p.removeEmpty()
	if len(p.species) == 0 {
		return fmt.Errorf("generation %d: %w", m.generation, ErrExtinct)
	}
	for _, s := range p.species {
		s.representative = pick(rng, s.members)
	}

	if err := e.realizeFitness(p.Genomes()); err != nil {
		return fmt.Errorf("generation %d: %w", m.generation, err)
	}
	best, err := p.BestPerforming()
	if err != nil {
		return fmt.Errorf("generation %d: %w", m.generation, err)
	}
	m.best = best

	stats := collectStats(m.generation, p, best)
	m.history = append(m.history, stats)
	e.logger.Info("generation finished", "stats", stats, "best_genome", best.id, "best_species", best.species.id, "elapsed", time.Since(start))
	return nil
}

func survivorCount(pools map[*Species][]*Genome) int {
	n := 0
	for _, pool := range pools {
		n += len(pool)
	}
	return n
}
