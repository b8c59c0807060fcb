package neat

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Activation squashes the summed input of a node. Implementations must be pure.
type Activation interface {
	Activate(x float64) float64
}

// ActivationFunc adapts an ordinary function to the Activation interface.
type ActivationFunc func(x float64) float64

// Activate calls f(x).
func (f ActivationFunc) Activate(x float64) float64 { return f(x) }

// SigmoidSteepness is the slope factor of the default sigmoid.
const SigmoidSteepness = 4.9

// ActivationFunctions maps names usable in a config file to activation functions.
var ActivationFunctions = map[string]ActivationFunc{
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"relu":     ReLU,
	"identity": Identity,
	"clamped":  Clamped,
	"gaussian": Gaussian,
	"absolute": Absolute,
	"abs":      Absolute,
	"sine":     Sine,
	"hat":      Hat,
	"square":   Square,
	"step":     Step,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationFunc, error) {
	if fn, ok := ActivationFunctions[strings.ToLower(name)]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s (known: %s)", name, strings.Join(activationNames(), ", "))
}

func activationNames() []string {
	names := make([]string, 0, len(ActivationFunctions))
	for name := range ActivationFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sigmoid is the steepened logistic function 1 / (1 + e^(-4.9x)).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-SigmoidSteepness*x))
}

// Tanh activation function.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// ReLU (Rectified Linear Unit) activation function.
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// Identity activation function (linear).
func Identity(x float64) float64 {
	return x
}

// Clamped clamps the output between -1 and 1.
func Clamped(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// Gaussian activation function.
func Gaussian(x float64) float64 {
	return math.Exp(-x * x / 2.0)
}

// Absolute value activation function.
func Absolute(x float64) float64 {
	return math.Abs(x)
}

// Sine activation function.
func Sine(x float64) float64 {
	return math.Sin(x)
}

// Hat is a triangular pulse centered at 0.
func Hat(x float64) float64 {
	return math.Max(0.0, 1.0-math.Abs(x))
}

// Square activation function (x^2).
func Square(x float64) float64 {
	return x * x
}

// Step returns 1 for positive input and 0 otherwise.
func Step(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}
