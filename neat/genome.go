package neat

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/baldhumanity/neatcore/neat/nn"
)

// Genome is one individual of the population: a directed graph of nodes
// joined by genes, plus the bookkeeping evolution needs.
//
// Input nodes are numbered 1..in and output nodes in+1..in+out. Hidden nodes
// are allocated above the highest id in use. A node's category is derived
// from these lists, never stored.
type Genome struct {
	id        int
	engine    *Engine
	genes     map[int]*Gene // innovation number -> gene
	inputs    []int
	outputs   []int
	species   *Species // non-owning; the population owns species
	fitness   float64
	evaluated bool
}

func newGenome(e *Engine, inputs, outputs []int) *Genome {
	return &Genome{
		id:      e.nextGenomeID(),
		engine:  e,
		genes:   make(map[int]*Gene),
		inputs:  slices.Clone(inputs),
		outputs: slices.Clone(outputs),
	}
}

// ID returns the genome's identifier, unique within its engine.
func (g *Genome) ID() int { return g.id }

// Species returns the species the genome currently belongs to, or nil.
func (g *Genome) Species() *Species { return g.species }

// InputNodes returns the input node ids in input-vector order.
func (g *Genome) InputNodes() []int { return slices.Clone(g.inputs) }

// OutputNodes returns the output node ids in output-vector order.
func (g *Genome) OutputNodes() []int { return slices.Clone(g.outputs) }

// Genes returns the genome's genes in ascending innovation order.
func (g *Genome) Genes() []*Gene {
	genes := make([]*Gene, 0, len(g.genes))
	for _, gene := range g.genes {
		genes = append(genes, gene)
	}
	sort.Slice(genes, func(i, j int) bool { return genes[i].innovation < genes[j].innovation })
	return genes
}

// Links returns the genes as evaluator links, in ascending innovation order.
func (g *Genome) Links() []nn.Link {
	genes := g.Genes()
	links := make([]nn.Link, len(genes))
	for i, gene := range genes {
		links[i] = gene.link()
	}
	return links
}

// Gene returns the gene with the given innovation number.
func (g *Genome) Gene(innovation int) (*Gene, bool) {
	gene, ok := g.genes[innovation]
	return gene, ok
}

// HasGene reports whether the genome carries the innovation number.
func (g *Genome) HasGene(innovation int) bool {
	_, ok := g.genes[innovation]
	return ok
}

// HighestInnovation returns the largest innovation number carried, or 0 for an empty genome.
func (g *Genome) HighestInnovation() int {
	highest := 0
	for inno := range g.genes {
		if inno > highest {
			highest = inno
		}
	}
	return highest
}

// HighestNode returns the largest node id in use by any gene, input or output.
func (g *Genome) HighestNode() int {
	highest := 0
	for _, n := range g.inputs {
		highest = max(highest, n)
	}
	for _, n := range g.outputs {
		highest = max(highest, n)
	}
	for _, gene := range g.genes {
		highest = max(highest, gene.from, gene.to)
	}
	return highest
}

func (g *Genome) isInput(node int) bool  { return slices.Contains(g.inputs, node) }
func (g *Genome) isOutput(node int) bool { return slices.Contains(g.outputs, node) }

// HiddenNodes returns the ids of nodes that are neither inputs nor outputs, ascending.
func (g *Genome) HiddenNodes() []int {
	seen := make(map[int]bool)
	var hidden []int
	for _, gene := range g.genes {
		for _, n := range [2]int{gene.from, gene.to} {
			if seen[n] || g.isInput(n) || g.isOutput(n) {
				continue
			}
			seen[n] = true
			hidden = append(hidden, n)
		}
	}
	sort.Ints(hidden)
	return hidden
}

// EnabledConnections counts the genes that take part in evaluation.
func (g *Genome) EnabledConnections() int {
	n := 0
	for _, gene := range g.genes {
		if gene.enabled {
			n++
		}
	}
	return n
}

// AddGene inserts a copy of gene.
//
// When both parents are given and both carry the innovation with exactly one
// copy disabled, the inserted gene is disabled with probability
// GeneDisableChance and enabled otherwise.
func (g *Genome) AddGene(gene *Gene, parentA, parentB *Genome) error {
	if g.evaluated {
		return fmt.Errorf("add gene %d to genome %d: %w", gene.innovation, g.id, ErrFrozen)
	}
	if g.HasGene(gene.innovation) {
		return fmt.Errorf("add gene to genome %d: %w: %d", g.id, ErrDuplicateInnovation, gene.innovation)
	}

	c := gene.copy()
	if parentA != nil && parentB != nil {
		a, okA := parentA.genes[c.innovation]
		b, okB := parentB.genes[c.innovation]
		if okA && okB && a.enabled != b.enabled {
			c.enabled = !chance(g.engine.rng, g.engine.Setting(GeneDisableChance))
		}
	}
	g.genes[c.innovation] = c
	return nil
}

// SetSpecies records the species the genome belongs to.
func (g *Genome) SetSpecies(s *Species) error {
	if g.evaluated {
		return fmt.Errorf("move genome %d to another species: %w", g.id, ErrFrozen)
	}
	g.species = s
	return nil
}

// Clone deep-copies the genes and node lists. The clone gets a fresh id,
// shares the species reference and has no fitness yet.
func (g *Genome) Clone() *Genome {
	c := newGenome(g.engine, g.inputs, g.outputs)
	c.species = g.species
	for inno, gene := range g.genes {
		c.genes[inno] = gene.copy()
	}
	return c
}

// Evaluated reports whether the fitness has been computed. An evaluated genome is frozen.
func (g *Genome) Evaluated() bool { return g.evaluated }

// Fitness returns the cached fitness, computing it with the engine's
// calculator on first use. A calculator error is returned and nothing is cached.
func (g *Genome) Fitness() (float64, error) {
	if g.evaluated {
		return g.fitness, nil
	}
	v, err := g.engine.calculator.Fitness(g)
	if err != nil {
		return 0, fmt.Errorf("fitness of genome %d: %w", g.id, err)
	}
	g.setFitness(v)
	return v, nil
}

// cachedFitness returns the stored fitness; callers must know it has been realized.
func (g *Genome) cachedFitness() float64 {
	if !g.evaluated {
		panic(fmt.Sprintf("neat: fitness of genome %d read before evaluation", g.id))
	}
	return g.fitness
}

func (g *Genome) setFitness(v float64) {
	g.fitness = v
	g.evaluated = true
	if g.species != nil {
		g.species.observe(v)
	}
}

// Calculate evaluates the network encoded by the genome.
func (g *Genome) Calculate(inputs []float64) ([]float64, error) {
	out, err := nn.Evaluate(g, g.engine.activation.Activate, inputs)
	if err != nil {
		return nil, fmt.Errorf("calculate genome %d: %w", g.id, err)
	}
	return out, nil
}

// Graph returns a gonum view of every gene, enabled or not, for callers
// that want to inspect the topology with gonum's graph algorithms.
func (g *Genome) Graph() *simple.DirectedGraph {
	return nn.DirectedGraph(g.Links())
}

// Validate checks the structural invariants: the gene map is keyed by
// innovation, no gene targets an input node, and the genes form a DAG.
func (g *Genome) Validate() error {
	for inno, gene := range g.genes {
		if inno != gene.innovation {
			return fmt.Errorf("genome %d: gene %d stored under innovation %d", g.id, gene.innovation, inno)
		}
		if g.isInput(gene.to) {
			return fmt.Errorf("genome %d: gene %d targets input node %d", g.id, inno, gene.to)
		}
	}
	if !nn.Acyclic(g.Links()) {
		return fmt.Errorf("genome %d: %w", g.id, nn.ErrCycle)
	}
	return nil
}

// String returns a string representation of the Genome.
func (g *Genome) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Genome(ID: %d", g.id)
	if g.evaluated {
		fmt.Fprintf(&sb, ", Fitness: %.4f", g.fitness)
	}
	fmt.Fprintf(&sb, ", Hidden: %d, Enabled: %d/%d)\n", len(g.HiddenNodes()), g.EnabledConnections(), len(g.genes))
	for _, gene := range g.Genes() {
		fmt.Fprintf(&sb, "  %s\n", gene)
	}
	return sb.String()
}
