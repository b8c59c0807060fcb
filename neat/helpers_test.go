package neat

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// constantFitness scores every network the same.
func constantFitness(v float64) FitnessCalculator {
	return FitnessFunc(func(Network) (float64, error) { return v, nil })
}

// firstOutput scores a network by its output for an all-ones input.
func firstOutput(inputs int) FitnessCalculator {
	in := make([]float64, inputs)
	for i := range in {
		in[i] = 1
	}
	return FitnessFunc(func(n Network) (float64, error) {
		out, err := n.Calculate(in)
		if err != nil {
			return 0, err
		}
		return out[0], nil
	})
}

func newTestEngine(t *testing.T, in, out int, calc FitnessCalculator, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithSeed(1), WithLogger(discard)}, opts...)
	e, err := New(in, out, ActivationFunc(Sigmoid), calc, opts...)
	require.NoError(t, err)
	return e
}

// quiet disables every random event of Mutate.
func quiet(e *Engine) {
	e.SetSetting(MutationNewNodeChance, 0)
	e.SetSetting(MutationNewConnectionChance, 0)
	e.SetSetting(MutationWeightChance, 0)
}

type geneSpec struct {
	inno, from, to int
	weight         float64
	enabled        bool
}

func on(inno, from, to int, w float64) geneSpec  { return geneSpec{inno, from, to, w, true} }
func off(inno, from, to int, w float64) geneSpec { return geneSpec{inno, from, to, w, false} }

// buildGenome creates a genome with inputs 1..in, outputs in+1..in+out and the given genes.
func buildGenome(t *testing.T, e *Engine, genes ...geneSpec) *Genome {
	t.Helper()
	inputs := make([]int, e.inputSize)
	for i := range inputs {
		inputs[i] = i + 1
	}
	outputs := make([]int, e.outputSize)
	for i := range outputs {
		outputs[i] = e.inputSize + i + 1
	}
	g := newGenome(e, inputs, outputs)
	for _, s := range genes {
		gene := NewGene(s.inno, s.from, s.to, s.weight)
		gene.enabled = s.enabled
		require.NoError(t, g.AddGene(gene, nil, nil))
		// keep the counter ahead of hand-picked numbers
		e.innovation = max(e.innovation, s.inno)
	}
	return g
}

func innovations(g *Genome) []int {
	var out []int
	for _, gene := range g.Genes() {
		out = append(out, gene.Innovation())
	}
	return out
}
