package neat

import (
	"fmt"

	"github.com/baldhumanity/neatcore/neat/nn"
)

// Gene is a directed, weighted connection between two nodes.
// The innovation number identifies the mutation event that created it:
// genes sharing a number in two genomes descend from the same event.
type Gene struct {
	innovation int
	from       int
	to         int
	weight     float64
	enabled    bool
}

// NewGene creates an enabled gene.
func NewGene(innovation, from, to int, weight float64) *Gene {
	return &Gene{
		innovation: innovation,
		from:       from,
		to:         to,
		weight:     weight,
		enabled:    true,
	}
}

// Innovation returns the gene's historical marker.
func (g *Gene) Innovation() int { return g.innovation }

// From returns the source node id.
func (g *Gene) From() int { return g.from }

// To returns the target node id.
func (g *Gene) To() int { return g.to }

// Weight returns the connection weight.
func (g *Gene) Weight() float64 { return g.weight }

// Enabled reports whether the connection takes part in evaluation.
func (g *Gene) Enabled() bool { return g.enabled }

func (g *Gene) copy() *Gene {
	c := *g
	return &c
}

func (g *Gene) link() nn.Link {
	return nn.Link{From: g.from, To: g.to, Weight: g.weight, Enabled: g.enabled}
}

// String returns a string representation of the Gene.
func (g *Gene) String() string {
	state := "on"
	if !g.enabled {
		state = "off"
	}
	return fmt.Sprintf("Gene(#%d %d->%d, w: %.3f, %s)", g.innovation, g.from, g.to, g.weight, state)
}
