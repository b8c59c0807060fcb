package neat

import "math"

// survivorStart returns the rank index from which members of a species of
// the given size are culled: remove = ceil(size*pct), start = floor(size-remove)+1.
// The result is clamped into [0, size], so a species always keeps at least
// its best member unless it is empty.
func survivorStart(size int, pct float64) int {
	remove := math.Ceil(float64(size) * pct)
	start := int(math.Floor(float64(size)-remove)) + 1
	return max(0, min(start, size))
}

// cull drops every member ranked at or past survivorStart and returns the survivors, best first.
func (s *Species) cull(pct float64) []*Genome {
	ranked := s.ranked()
	start := survivorStart(len(ranked), pct)
	for _, g := range ranked[start:] {
		s.remove(g)
	}
	return ranked[:start]
}

// stagnate counts one more generation without improvement and reports
// whether the species has now been stagnant for more than limit generations.
func (s *Species) stagnate(limit int) bool {
	s.failedGenerations++
	return s.failedGenerations > limit
}

// breedingQuota returns floor(avg/total*popSize) - 1. When the total is not
// positive the ratio is undefined and every species gets an equal share.
func breedingQuota(avg, total float64, popSize, speciesCount int) int {
	share := 1.0 / float64(speciesCount)
	if total > 0 {
		share = avg / total
	}
	return int(math.Floor(share*float64(popSize))) - 1
}
