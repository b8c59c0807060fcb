package nn

import (
	"errors"
	"fmt"
)

var (
	// ErrInputSize is returned when the input vector does not match the input node count.
	ErrInputSize = errors.New("input size mismatch")
	// ErrCycle is returned when the enabled connections of a network loop back on themselves.
	ErrCycle = errors.New("cycle in enabled connections")
)

// ActivationFunc squashes the summed input of a node.
type ActivationFunc func(x float64) float64

// evaluation holds the per-call state of a backward evaluation.
type evaluation struct {
	activate ActivationFunc
	incoming Adjacency
	inputs   map[int]float64
	cache    map[int]float64
	active   map[int]bool
}

// Evaluate computes the output vector of g for the given input vector.
//
// There is no precompiled execution order: every output node is resolved by
// walking its enabled incoming links backward until input nodes are reached.
// Node values are memoized for the duration of this call only.
func Evaluate(g Graph, activate ActivationFunc, inputs []float64) ([]float64, error) {
	inputKeys := g.InputNodes()
	if len(inputs) != len(inputKeys) {
		return nil, fmt.Errorf("%w: got %d values for %d input nodes", ErrInputSize, len(inputs), len(inputKeys))
	}

	ev := &evaluation{
		activate: activate,
		incoming: NewAdjacency(g.Links(), true),
		inputs:   make(map[int]float64, len(inputKeys)),
		cache:    make(map[int]float64),
		active:   make(map[int]bool),
	}
	for i, key := range inputKeys {
		ev.inputs[key] = inputs[i]
	}

	outputKeys := g.OutputNodes()
	outputs := make([]float64, len(outputKeys))
	for i, key := range outputKeys {
		v, err := ev.value(key)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	return outputs, nil
}

func (ev *evaluation) value(node int) (float64, error) {
	if v, ok := ev.inputs[node]; ok {
		return v, nil
	}
	if v, ok := ev.cache[node]; ok {
		return v, nil
	}
	if ev.active[node] {
		return 0, fmt.Errorf("%w: node %d", ErrCycle, node)
	}
	ev.active[node] = true

	sum := 0.0
	for _, l := range ev.incoming[node] {
		v, err := ev.value(l.From)
		if err != nil {
			return 0, err
		}
		sum += v * l.Weight
	}

	ev.active[node] = false
	out := ev.activate(sum)
	ev.cache[node] = out
	return out, nil
}
