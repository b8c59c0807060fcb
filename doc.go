// Package neatcore is a Go implementation of NeuroEvolution of Augmenting Topologies (NEAT).
//
// NEAT evolves both the weights and the structure of neural networks. Genes
// carry innovation numbers so genomes with different topologies can be
// aligned for crossover and compared for speciation.
//
// The algorithm lives in package neat; network evaluation and graph helpers
// live in neat/nn.
//
// Basic usage:
//
//	calc := neat.FitnessFunc(func(n neat.Network) (float64, error) {
//		out, err := n.Calculate([]float64{1, 0, 1})
//		if err != nil {
//			return 0, err
//		}
//		return 1 - math.Abs(1-out[0]), nil
//	})
//
//	engine, err := neat.New(3, 1, neat.ActivationFunc(neat.Sigmoid), calc, neat.WithSeed(42))
//	if err != nil {
//		log.Fatalf("Error creating engine: %v", err)
//	}
//
//	result, err := engine.TrainToFitness(150, 0.99)
//	if err != nil {
//		log.Fatalf("Error training: %v", err)
//	}
//	fmt.Println(result.Best)
package neatcore
