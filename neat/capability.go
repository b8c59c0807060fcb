package neat

// Network is the realized form of a genome handed to a FitnessCalculator.
type Network interface {
	// Calculate feeds inputs forward and returns one value per output node.
	Calculate(inputs []float64) ([]float64, error)
}

// FitnessCalculator scores a network. It may be slow, but it must only read
// the network it is given: the engine may call it from several goroutines.
type FitnessCalculator interface {
	Fitness(n Network) (float64, error)
}

// FitnessFunc adapts an ordinary function to the FitnessCalculator interface.
type FitnessFunc func(n Network) (float64, error)

// Fitness calls f(n).
func (f FitnessFunc) Fitness(n Network) (float64, error) { return f(n) }

// GenerationListener is an optional hook a FitnessCalculator can implement
// to be told the best genome after every generation.
type GenerationListener interface {
	GenerationFinished(best *Genome)
}
