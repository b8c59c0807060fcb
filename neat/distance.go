package neat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Distance returns the compatibility distance between two genomes:
//
//	d = c1*E/N + c2*D/N + c3*W
//
// E counts excess genes (innovations beyond the shorter genome's highest),
// D counts disjoint genes (unmatched innovations within it), W is the mean
// absolute weight difference of matching genes and N is the gene count of the
// genome ending on the higher innovation number. When both end on the same
// number N is the larger of the two counts.
// The coefficients come from the DistanceExcessWeight, DistanceDisjointWeight
// and DistanceWeightsWeight settings of a's engine.
func Distance(a, b *Genome) (float64, error) {
	if len(a.genes) == 0 || len(b.genes) == 0 {
		return 0, fmt.Errorf("distance between genomes %d and %d: %w", a.id, b.id, ErrEmptyGenome)
	}

	longest, shortest := a, b
	if b.HighestInnovation() > a.HighestInnovation() {
		longest, shortest = b, a
	}
	shortestEnd := shortest.HighestInnovation()
	longestEnd := longest.HighestInnovation()

	var excess, disjoint float64
	var diffs []float64
	for inno := 1; inno <= longestEnd; inno++ {
		x, inLongest := longest.genes[inno]
		y, inShortest := shortest.genes[inno]
		switch {
		case inLongest && inShortest:
			diffs = append(diffs, math.Abs(x.weight-y.weight))
		case inLongest || inShortest:
			if inno <= shortestEnd {
				disjoint++
			} else {
				excess++
			}
		}
	}

	meanDiff := 0.0
	if len(diffs) > 0 {
		meanDiff = stat.Mean(diffs, nil)
	}
	n := float64(len(longest.genes))
	if shortestEnd == longestEnd {
		n = float64(max(len(a.genes), len(b.genes)))
	}

	e := a.engine
	c1 := e.Setting(DistanceExcessWeight)
	c2 := e.Setting(DistanceDisjointWeight)
	c3 := e.Setting(DistanceWeightsWeight)
	return c1*excess/n + c2*disjoint/n + c3*meanDiff, nil
}
