package neat

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine owns the state of one evolution run: settings, the innovation
// counter shared by every genome it creates, the random source, and the
// population manager. Separate engines never share state.
type Engine struct {
	inputSize  int
	outputSize int
	activation Activation
	calculator FitnessCalculator
	listener   GenerationListener

	settings       *Settings
	rng            Random
	logger         *slog.Logger
	workers        int
	elitism        bool
	maxGenerations int

	mu         sync.Mutex
	innovation int // last innovation number handed out
	genomeID   int
	speciesID  int

	manager *PopulationManager
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the random source.
func WithRandom(r Random) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds the default random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = NewRandom(seed) }
}

// WithLogger sets the logger. Every record carries the run id.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithWorkers evaluates up to n genomes concurrently. n <= 1 keeps evaluation sequential.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithElitism copies the best genome of every surviving species unchanged
// into the next generation.
func WithElitism(enabled bool) Option {
	return func(e *Engine) { e.elitism = enabled }
}

// WithMaxGenerations stops TrainToFitness after n generations. 0 means no limit.
func WithMaxGenerations(n int) Option {
	return func(e *Engine) { e.maxGenerations = n }
}

// WithSettings replaces the default settings table.
func WithSettings(s *Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithGenerationListener registers a hook called after every generation.
// A FitnessCalculator that implements GenerationListener is registered automatically.
func WithGenerationListener(l GenerationListener) Option {
	return func(e *Engine) { e.listener = l }
}

// New creates an engine for networks with the given arity.
func New(inputSize, outputSize int, activation Activation, calculator FitnessCalculator, opts ...Option) (*Engine, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("input size must be positive, got %d", inputSize)
	}
	if outputSize <= 0 {
		return nil, fmt.Errorf("output size must be positive, got %d", outputSize)
	}
	if activation == nil {
		return nil, errors.New("activation function is required")
	}
	if calculator == nil {
		return nil, errors.New("fitness calculator is required")
	}

	e := &Engine{
		inputSize:  inputSize,
		outputSize: outputSize,
		activation: activation,
		calculator: calculator,
		settings:   DefaultSettings(),
		workers:    1,
	}
	if l, ok := calculator.(GenerationListener); ok {
		e.listener = l
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = NewRandom(time.Now().UnixNano())
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.logger = e.logger.With("run", uuid.NewString())
	e.manager = newPopulationManager(e)
	return e, nil
}

// InputSize returns the number of input nodes.
func (e *Engine) InputSize() int { return e.inputSize }

// OutputSize returns the number of output nodes.
func (e *Engine) OutputSize() int { return e.outputSize }

// Setting returns the current value of key.
func (e *Engine) Setting(key Setting) float64 { return e.settings.Get(key) }

// SetSetting changes key. The new value is used from the next time it is
// read. Out-of-range values are rejected with the same errors as Validate.
func (e *Engine) SetSetting(key Setting, value float64) error {
	return e.settings.Set(key, value)
}

// Manager returns the population manager.
func (e *Engine) Manager() *PopulationManager { return e.manager }

// nextInnovation returns a fresh innovation number. Numbers start at 1 and are never reused.
func (e *Engine) nextInnovation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.innovation++
	return e.innovation
}

func (e *Engine) nextGenomeID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.genomeID++
	return e.genomeID
}

func (e *Engine) nextSpeciesID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speciesID++
	return e.speciesID
}

// Result reports the outcome of TrainToFitness.
type Result struct {
	Best               *Genome
	Fitness            float64
	Generation         int
	HiddenNodes        int
	EnabledConnections int
	Genes              []*Gene
}

func newResult(best *Genome, generation int) *Result {
	return &Result{
		Best:               best,
		Fitness:            best.cachedFitness(),
		Generation:         generation,
		HiddenNodes:        len(best.HiddenNodes()),
		EnabledConnections: best.EnabledConnections(),
		Genes:              best.Genes(),
	}
}

// LogValue implements slog.LogValuer.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("genome", r.Best.ID()),
		slog.Float64("fitness", r.Fitness),
		slog.Int("generation", r.Generation),
		slog.Int("hidden", r.HiddenNodes),
		slog.Int("enabled", r.EnabledConnections),
		slog.Int("genes", len(r.Genes)),
	)
}

// TrainToFitness initializes a population of populationSize genomes and runs
// generations until the best genome reaches target. With WithMaxGenerations
// set, it gives up after that many generations and returns the latest best
// together with ErrGenerationLimit. The best genome of every generation is
// checked with Validate before it is compared against target or reported.
func (e *Engine) TrainToFitness(populationSize int, target float64) (*Result, error) {
	m := e.manager
	if err := m.Initialize(populationSize); err != nil {
		return nil, err
	}

	for {
		if err := m.NewGeneration(); err != nil {
			return nil, err
		}
		best := m.Best()
		if e.listener != nil {
			e.listener.GenerationFinished(best)
		}
		if err := best.Validate(); err != nil {
			return nil, fmt.Errorf("generation %d: best genome: %w", m.Generation(), err)
		}

		if best.cachedFitness() >= target {
			r := newResult(best, m.Generation())
			e.logger.Info("solution found", "result", r)
			for _, gene := range r.Genes {
				e.logger.Debug("solution gene", "gene", gene.String())
			}
			return r, nil
		}
		if e.maxGenerations > 0 && m.Generation() >= e.maxGenerations {
			r := newResult(best, m.Generation())
			e.logger.Warn("generation limit reached", "limit", e.maxGenerations, "result", r)
			return r, fmt.Errorf("%w: %d generations without reaching %g", ErrGenerationLimit, e.maxGenerations, target)
		}
	}
}
