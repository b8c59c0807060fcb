package neat

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// realizeFitness computes the fitness of every genome that has none yet.
//
// With more than one worker the calculator runs concurrently, each call
// reading only its own genome. The values are stored afterwards in input
// order, so the cache and species watermarks are updated sequentially.
func (e *Engine) realizeFitness(genomes []*Genome) error {
	var pending []*Genome
	for _, g := range genomes {
		if !g.evaluated {
			pending = append(pending, g)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if e.workers <= 1 {
		for _, g := range pending {
			if _, err := g.Fitness(); err != nil {
				return err
			}
		}
		return nil
	}

	values := make([]float64, len(pending))
	p := pool.New().WithErrors().WithMaxGoroutines(e.workers)
	for i, g := range pending {
		p.Go(func() error {
			v, err := e.calculator.Fitness(g)
			if err != nil {
				return fmt.Errorf("fitness of genome %d: %w", g.id, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	for i, g := range pending {
		g.setFitness(values[i])
	}
	return nil
}
