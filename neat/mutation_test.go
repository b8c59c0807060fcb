package neat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neatcore/neat/nn"
)

func TestNodeAddSplitsConnection(t *testing.T) {
	e := newTestEngine(t, 2, 1, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationNewNodeChance, 1)

	g := buildGenome(t, e)
	inno := e.nextInnovation()
	require.Equal(t, 1, inno)
	require.NoError(t, g.AddGene(NewGene(inno, 1, 3, 0.5), nil, nil))

	require.NoError(t, g.Mutate())

	genes := g.Genes()
	require.Len(t, genes, 3)

	assert.Equal(t, 1, genes[0].Innovation())
	assert.False(t, genes[0].Enabled())

	assert.Equal(t, 2, genes[1].Innovation())
	assert.Equal(t, 1, genes[1].From())
	assert.Equal(t, 4, genes[1].To())
	assert.Equal(t, 1.0, genes[1].Weight())
	assert.True(t, genes[1].Enabled())

	assert.Equal(t, 3, genes[2].Innovation())
	assert.Equal(t, 4, genes[2].From())
	assert.Equal(t, 3, genes[2].To())
	assert.Equal(t, 0.5, genes[2].Weight())
	assert.True(t, genes[2].Enabled())

	assert.Equal(t, []int{4}, g.HiddenNodes())
}

func TestNodeAddSkipsWithoutEnabledGenes(t *testing.T) {
	e := newTestEngine(t, 2, 1, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationNewNodeChance, 1)
	g := buildGenome(t, e, off(1, 1, 3, 0.5))

	require.NoError(t, g.Mutate())
	assert.Equal(t, []int{1}, innovations(g))
}

func TestLinkAddKeepsGraphAcyclic(t *testing.T) {
	e := newTestEngine(t, 3, 2, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationNewConnectionChance, 1)
	e.SetSetting(MutationNewNodeChance, 0.3)
	require.NoError(t, e.Manager().Initialize(5))

	for _, g := range e.Manager().Population().Genomes() {
		for i := 0; i < 60; i++ {
			require.NoError(t, g.Mutate())
			require.NoError(t, g.Validate())

			starts := append(g.HiddenNodes(), g.OutputNodes()...)
			assert.False(t, nn.HasCycle(nn.NewAdjacency(g.Links(), false), starts, g.isInput))
		}
	}
}

func TestLinkAddConnectsNewPair(t *testing.T) {
	e := newTestEngine(t, 2, 1, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationNewConnectionChance, 1)
	g := buildGenome(t, e, on(1, 1, 3, 0.5))

	require.NoError(t, g.Mutate())

	genes := g.Genes()
	require.Len(t, genes, 2)
	added := genes[1]
	assert.Equal(t, 2, added.From())
	assert.Equal(t, 3, added.To())
	assert.GreaterOrEqual(t, added.Weight(), -1.0)
	assert.LessOrEqual(t, added.Weight(), 1.0)
	assert.Greater(t, added.Innovation(), 1)
}

func TestLinkAddGivesUpQuietly(t *testing.T) {
	e := newTestEngine(t, 2, 1, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationNewConnectionChance, 1)
	g := buildGenome(t, e, on(1, 1, 3, 0.5), off(2, 2, 3, 0.5))
	before := e.innovation

	require.NoError(t, g.Mutate(), "a fully connected genome is not an error")
	assert.Equal(t, []int{1, 2}, innovations(g))
	assert.Equal(t, before, e.innovation)
}

func TestLinkAddRejectsCycle(t *testing.T) {
	e := newTestEngine(t, 1, 1, constantFitness(1))
	// 1 -> 3 -> 4 -> 2; adding 4 -> 3 would loop
	g := buildGenome(t, e, on(1, 1, 3, 1), on(2, 3, 4, 1), on(3, 4, 2, 1))
	m := &mutation{genome: g, engine: e}

	assert.True(t, m.createsCycle(4, 3))
	assert.False(t, m.createsCycle(3, 2))
	assert.False(t, m.createsCycle(1, 4))
}

func TestWeightMutationRandomizes(t *testing.T) {
	e := newTestEngine(t, 4, 3, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationWeightChance, 1)
	e.SetSetting(MutationWeightRandomChance, 1)
	e.SetSetting(MutationWeightChanceRandomRange, 2)
	require.NoError(t, e.Manager().Initialize(1))
	g := e.Manager().Population().Genomes()[0]

	require.NoError(t, g.Mutate())
	for _, gene := range g.Genes() {
		assert.GreaterOrEqual(t, gene.Weight(), -2.0)
		assert.LessOrEqual(t, gene.Weight(), 2.0)
	}
}

func TestWeightMutationPerturbs(t *testing.T) {
	e := newTestEngine(t, 4, 3, constantFitness(1))
	quiet(e)
	e.SetSetting(MutationWeightChance, 1)
	e.SetSetting(MutationWeightRandomChance, 0)
	e.SetSetting(MutationWeightMaxDisturbance, 0.1)
	require.NoError(t, e.Manager().Initialize(1))
	g := e.Manager().Population().Genomes()[0]

	before := map[int]float64{}
	for _, gene := range g.Genes() {
		before[gene.Innovation()] = gene.Weight()
	}
	require.NoError(t, g.Mutate())
	changed := 0
	for _, gene := range g.Genes() {
		delta := gene.Weight() - before[gene.Innovation()]
		assert.LessOrEqual(t, math.Abs(delta), 0.1+1e-9)
		if delta != 0 {
			changed++
		}
	}
	assert.Equal(t, len(before), changed)
}
