package neat

import (
	"fmt"
	"slices"
)

type connection struct {
	from, to int
}

// connections lists the source->target pairs of every gene in innovation order.
func (g *Genome) connections() []connection {
	genes := g.Genes()
	conns := make([]connection, len(genes))
	for i, gene := range genes {
		conns[i] = connection{gene.from, gene.to}
	}
	return conns
}

// FixDuplicates looks for a candidate with exactly the same ordered
// source->target topology and, if one exists, renumbers this genome's genes
// onto the candidate's innovation numbers position by position. Independently
// discovered identical structures then share one lineage.
func (g *Genome) FixDuplicates(candidates []*Genome) error {
	if g.evaluated {
		return fmt.Errorf("fix duplicates of genome %d: %w", g.id, ErrFrozen)
	}
	own := g.connections()
	for _, other := range candidates {
		if other == g || !slices.Equal(own, other.connections()) {
			continue
		}
		mine := g.Genes()
		theirs := other.Genes()
		renumbered := make(map[int]*Gene, len(mine))
		for i, gene := range mine {
			gene.innovation = theirs[i].innovation
			renumbered[gene.innovation] = gene
		}
		g.genes = renumbered
		return nil
	}
	return nil
}

// CrossAndAdd breeds a child from two genomes of the same species and adds it
// to the population, where it is classified by compatibility distance. The
// fitter parent is dominant; on a tie b dominates.
func (p *Population) CrossAndAdd(a, b *Genome) (*Genome, error) {
	if a.species == nil || a.species != b.species {
		return nil, fmt.Errorf("cross genomes %d and %d: %w", a.id, b.id, ErrSpeciesMismatch)
	}
	fa, err := a.Fitness()
	if err != nil {
		return nil, err
	}
	fb, err := b.Fitness()
	if err != nil {
		return nil, err
	}

	dominant, other := b, a
	if fa > fb {
		dominant, other = a, b
	}
	child, err := crossDominant(dominant, other, p.Genomes())
	if err != nil {
		return nil, err
	}
	if err := p.AddGenome(child); err != nil {
		return nil, err
	}
	return child, nil
}

// crossDominant builds a child carrying every innovation of dominant. Genes
// shared with other are taken from either parent with equal chance. The
// child is aligned against candidates with FixDuplicates and then mutated.
func crossDominant(dominant, other *Genome, candidates []*Genome) (*Genome, error) {
	if dominant.species != other.species {
		return nil, fmt.Errorf("cross genomes %d and %d: %w", dominant.id, other.id, ErrSpeciesMismatch)
	}
	if len(dominant.genes) == 0 || len(other.genes) == 0 {
		return nil, fmt.Errorf("cross genomes %d and %d: %w", dominant.id, other.id, ErrEmptyGenome)
	}

	rng := dominant.engine.rng
	child := newGenome(dominant.engine, dominant.inputs, dominant.outputs)
	for _, gene := range dominant.Genes() {
		inherited := gene
		if theirs, ok := other.genes[gene.innovation]; ok {
			inherited = pick(rng, []*Gene{gene, theirs})
		}
		if err := child.AddGene(inherited, dominant, other); err != nil {
			return nil, err
		}
	}

	if err := child.FixDuplicates(candidates); err != nil {
		return nil, err
	}
	if err := child.Mutate(); err != nil {
		return nil, err
	}
	return child, nil
}
