package neat

import (
	"errors"

	"github.com/baldhumanity/neatcore/neat/nn"
)

var (
	// ErrFrozen is returned when a genome whose fitness has been computed is modified.
	ErrFrozen = errors.New("genome is frozen after fitness evaluation")
	// ErrDuplicateInnovation is returned when a genome already carries a gene with the same innovation number.
	ErrDuplicateInnovation = errors.New("duplicate innovation number")
	// ErrSpeciesMismatch is returned when crossing genomes of different species.
	ErrSpeciesMismatch = errors.New("genomes belong to different species")
	// ErrEmptyGenome is returned by operations that need at least one gene.
	ErrEmptyGenome = errors.New("genome has no genes")
	// ErrInputSize is returned when an input vector does not match the genome's input nodes.
	ErrInputSize = nn.ErrInputSize
	// ErrExtinct is returned when no species survives a generation.
	ErrExtinct = errors.New("all species died")
	// ErrGenerationLimit is returned when training stops at the configured generation cap.
	ErrGenerationLimit = errors.New("generation limit reached")
	// ErrAlreadyInitialized is returned when a population manager is initialized twice.
	ErrAlreadyInitialized = errors.New("population already initialized")
	// ErrNotInitialized is returned when a generation is requested before initialization.
	ErrNotInitialized = errors.New("population not initialized")
)

// errMutationFailed signals that a structural mutation gave up; it never leaves the package.
var errMutationFailed = errors.New("mutation failed")
