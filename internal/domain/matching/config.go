// Package matching implements the resume-to-catalog ranking pipeline: structured
// candidate filtering, nearest-neighbor retrieval and weighted composite scoring.
package matching

import (
	"errors"
	"fmt"
	"math"
)

// DefaultWindow is the experience tolerance, in years, used by both the filter and the fit score.
const DefaultWindow = 2

// DefaultTopK bounds the number of entries returned by semantic retrieval.
const DefaultTopK = 200

// Weights are the coefficients of the composite score. They must sum to 1.
type Weights struct {
	Skills     float64
	Semantic   float64
	Experience float64
}

// DefaultWeights returns the 0.45 skills / 0.40 semantic / 0.15 experience blend.
func DefaultWeights() Weights {
	return Weights{Skills: 0.45, Semantic: 0.40, Experience: 0.15}
}

const weightTolerance = 1e-9

// Validate checks the weights form a convex combination.
func (w Weights) Validate() error {
	if w.Skills < 0 || w.Semantic < 0 || w.Experience < 0 {
		return errors.New("weights must be non-negative")
	}
	sum := w.Skills + w.Semantic + w.Experience
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// Config parameterizes the scorer and the pipeline.
type Config struct {
	Window  int
	TopK    int
	Weights Weights
}

// DefaultConfig returns the stock matching configuration.
func DefaultConfig() Config {
	return Config{Window: DefaultWindow, TopK: DefaultTopK, Weights: DefaultWeights()}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Window < 0 {
		return errors.New("experience window must be >= 0")
	}
	if c.TopK < 1 {
		return errors.New("top-k must be >= 1")
	}
	return c.Weights.Validate()
}
