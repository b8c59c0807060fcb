package neat

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one finished generation.
// The csv tags let callers write a history with gocsv.
type GenerationStats struct {
	Generation             int     `csv:"generation"`
	Species                int     `csv:"species"`
	Population             int     `csv:"population"`
	BestFitness            float64 `csv:"best_fitness"`
	MeanFitness            float64 `csv:"mean_fitness"`
	FitnessStdDev          float64 `csv:"fitness_stddev"`
	BestHiddenNodes        int     `csv:"best_hidden_nodes"`
	BestEnabledConnections int     `csv:"best_enabled_connections"`
}

// LogValue implements slog.LogValuer.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("species", s.Species),
		slog.Int("population", s.Population),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("stddev", s.FitnessStdDev),
		slog.Int("hidden", s.BestHiddenNodes),
		slog.Int("enabled", s.BestEnabledConnections),
	)
}

// collectStats summarizes an evaluated population.
func collectStats(generation int, p *Population, best *Genome) GenerationStats {
	genomes := p.Genomes()
	fits := make([]float64, len(genomes))
	for i, g := range genomes {
		fits[i] = g.cachedFitness()
	}

	s := GenerationStats{
		Generation: generation,
		Species:    len(p.species),
		Population: len(genomes),
	}
	if len(fits) > 0 {
		s.BestFitness = floats.Max(fits)
		s.MeanFitness, s.FitnessStdDev = stat.MeanStdDev(fits, nil)
		if math.IsNaN(s.FitnessStdDev) {
			s.FitnessStdDev = 0
		}
	}
	if best != nil {
		s.BestHiddenNodes = len(best.HiddenNodes())
		s.BestEnabledConnections = best.EnabledConnections()
	}
	return s
}
