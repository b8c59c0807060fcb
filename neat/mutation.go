package neat

import (
	"fmt"
	"slices"
	"sort"

	"github.com/baldhumanity/neatcore/neat/nn"
)

// maxLinkAttempts bounds the random search for a new connection.
const maxLinkAttempts = 40

// mutation applies the structural and weight operators to one genome.
type mutation struct {
	genome *Genome
	engine *Engine
}

// Mutate applies three independent random events: node-add, link-add and
// weight mutation, each with the probability taken from the engine settings.
func (g *Genome) Mutate() error {
	if g.evaluated {
		return fmt.Errorf("mutate genome %d: %w", g.id, ErrFrozen)
	}
	m := &mutation{genome: g, engine: g.engine}
	return m.mutate()
}

func (m *mutation) mutate() error {
	e := m.engine

	if chance(e.rng, e.Setting(MutationNewNodeChance)) {
		if err := m.addNode(); err != nil {
			return err
		}
	}

	if chance(e.rng, e.Setting(MutationNewConnectionChance)) {
		switch err := m.addLink(); {
		case err == errMutationFailed:
			e.logger.Debug("link mutation failed", "genome", m.genome.id, "attempts", maxLinkAttempts)
		case err != nil:
			return err
		}
	}

	if chance(e.rng, e.Setting(MutationWeightChance)) {
		m.mutateWeights()
	}
	return nil
}

// addNode splits a random enabled connection from->to into from->new (weight 1)
// and new->to (the old weight), disabling the original.
func (m *mutation) addNode() error {
	g := m.genome
	var enabled []*Gene
	for _, gene := range g.Genes() {
		if gene.enabled {
			enabled = append(enabled, gene)
		}
	}
	if len(enabled) == 0 {
		return nil
	}

	split := pick(m.engine.rng, enabled)
	split.enabled = false

	node := g.HighestNode() + 1
	if err := g.AddGene(NewGene(m.engine.nextInnovation(), split.from, node, 1.0), nil, nil); err != nil {
		return err
	}
	return g.AddGene(NewGene(m.engine.nextInnovation(), node, split.to, split.weight), nil, nil)
}

// addLink connects two nodes that are not yet connected, without creating a
// cycle. It returns errMutationFailed when no pair is found in maxLinkAttempts.
func (m *mutation) addLink() error {
	g := m.genome
	rng := m.engine.rng
	hidden := g.HiddenNodes()

	sources := append(g.InputNodes(), hidden...)
	targets := append(slices.Clone(hidden), g.outputs...)
	sort.Ints(targets)

	existing := make(map[connection]bool, len(g.genes))
	for _, gene := range g.genes {
		existing[connection{gene.from, gene.to}] = true
	}

	for attempt := 0; attempt < maxLinkAttempts; attempt++ {
		from := pick(rng, sources)
		candidates := make([]int, 0, len(targets))
		for _, t := range targets {
			if t != from {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		to := pick(rng, candidates)

		if existing[connection{from, to}] || m.createsCycle(from, to) {
			continue
		}
		weight := rng.Range(-1, 1)
		return g.AddGene(NewGene(m.engine.nextInnovation(), from, to, weight), nil, nil)
	}
	return errMutationFailed
}

// createsCycle reports whether adding from->to would close a loop. All genes
// count, enabled or not, so re-enabling a gene later can never form a cycle.
func (m *mutation) createsCycle(from, to int) bool {
	g := m.genome
	links := append(g.Links(), nn.Link{From: from, To: to, Enabled: true})
	starts := append(g.HiddenNodes(), g.outputs...)
	if !g.isInput(to) && !g.isOutput(to) {
		starts = append(starts, to)
	}
	return nn.HasCycle(nn.NewAdjacency(links, false), starts, g.isInput)
}

// mutateWeights either replaces every weight with a uniform value in [-R, R]
// or perturbs every weight by a uniform delta in [-D, D].
func (m *mutation) mutateWeights() {
	e := m.engine
	genes := m.genome.Genes()
	if chance(e.rng, e.Setting(MutationWeightRandomChance)) {
		r := e.Setting(MutationWeightChanceRandomRange)
		for _, gene := range genes {
			gene.weight = e.rng.Range(-r, r)
		}
		return
	}
	d := e.Setting(MutationWeightMaxDisturbance)
	for _, gene := range genes {
		gene.weight += e.rng.Range(-d, d)
	}
}
