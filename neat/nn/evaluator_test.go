package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGraph struct {
	inputs  []int
	outputs []int
	links   []Link
}

func (g testGraph) InputNodes() []int  { return g.inputs }
func (g testGraph) OutputNodes() []int { return g.outputs }
func (g testGraph) Links() []Link      { return g.links }

func identity(x float64) float64 { return x }

func TestEvaluateDirectLinks(t *testing.T) {
	g := testGraph{
		inputs:  []int{1, 2},
		outputs: []int{3},
		links: []Link{
			{From: 1, To: 3, Weight: 0.5, Enabled: true},
			{From: 2, To: 3, Weight: -2, Enabled: true},
		},
	}

	out, err := Evaluate(g, identity, []float64{4, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, out)
}

func TestEvaluateSkipsDisabledLinks(t *testing.T) {
	g := testGraph{
		inputs:  []int{1, 2},
		outputs: []int{3},
		links: []Link{
			{From: 1, To: 3, Weight: 0.5, Enabled: true},
			{From: 2, To: 3, Weight: -2, Enabled: false},
		},
	}

	out, err := Evaluate(g, identity, []float64{4, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, out)
}

func TestEvaluateHiddenNodeAndOutputOrder(t *testing.T) {
	// 1 -> 4 -> 3, 2 -> 5; outputs listed as [5, 3]
	g := testGraph{
		inputs:  []int{1, 2},
		outputs: []int{5, 3},
		links: []Link{
			{From: 1, To: 4, Weight: 1, Enabled: true},
			{From: 4, To: 3, Weight: 3, Enabled: true},
			{From: 2, To: 5, Weight: 2, Enabled: true},
		},
	}
	double := func(x float64) float64 { return 2 * x }

	out, err := Evaluate(g, double, []float64{1, 1})
	require.NoError(t, err)
	// node 4 = 2*1, node 3 = 2*(2*3), node 5 = 2*2
	assert.Equal(t, []float64{4, 12}, out)
}

func TestEvaluateUnconnectedOutputUsesActivationOfZero(t *testing.T) {
	g := testGraph{inputs: []int{1}, outputs: []int{2}}
	sigmoid := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

	out, err := Evaluate(g, sigmoid, []float64{7})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out[0], 1e-12)
}

func TestEvaluateMemoizesSharedNodes(t *testing.T) {
	// diamond: 1 -> 4, 4 -> 5, 4 -> 6, 5 -> 3, 6 -> 3
	g := testGraph{
		inputs:  []int{1},
		outputs: []int{3},
		links: []Link{
			{From: 1, To: 4, Weight: 1, Enabled: true},
			{From: 4, To: 5, Weight: 1, Enabled: true},
			{From: 4, To: 6, Weight: 1, Enabled: true},
			{From: 5, To: 3, Weight: 1, Enabled: true},
			{From: 6, To: 3, Weight: 1, Enabled: true},
		},
	}
	calls := 0
	counting := func(x float64) float64 {
		calls++
		return x
	}

	out, err := Evaluate(g, counting, []float64{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, out)
	assert.Equal(t, 4, calls, "each non-input node is activated once per call")

	calls = 0
	_, err = Evaluate(g, counting, []float64{2})
	require.NoError(t, err)
	assert.Equal(t, 4, calls, "memoization does not leak across calls")
}

func TestEvaluateInputSizeMismatch(t *testing.T) {
	g := testGraph{inputs: []int{1, 2}, outputs: []int{3}}

	_, err := Evaluate(g, identity, []float64{1})
	assert.ErrorIs(t, err, ErrInputSize)
}

func TestEvaluateReportsCycle(t *testing.T) {
	g := testGraph{
		inputs:  []int{1},
		outputs: []int{2},
		links: []Link{
			{From: 1, To: 3, Weight: 1, Enabled: true},
			{From: 3, To: 4, Weight: 1, Enabled: true},
			{From: 4, To: 3, Weight: 1, Enabled: true},
			{From: 4, To: 2, Weight: 1, Enabled: true},
		},
	}

	_, err := Evaluate(g, identity, []float64{1})
	assert.ErrorIs(t, err, ErrCycle)
}
