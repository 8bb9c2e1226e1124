package sampler

import (
	"fmt"
	"math"
	"math/rand"
)

// SamplingError reports a weight vector nothing can be drawn from. It
// points at a modeling bug such as beta <= -1, never at bad luck.
type SamplingError struct {
	Weights []float64
	Reason  string
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("sampling error: %s (weights %v)", e.Reason, e.Weights)
}

// Sampler draws indices from unnormalized categorical distributions.
// It owns a single generator so that a run is reproducible from its
// seed; it is not safe for concurrent use.
type Sampler struct {
	rng    *rand.Rand
	cumsum []float64
}

func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws u uniformly from [0, sum(weights)) and returns the first
// index whose cumulative weight exceeds u.
func (s *Sampler) Sample(weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, &SamplingError{Weights: weights, Reason: "empty weight vector"}
	}
	if cap(s.cumsum) < len(weights) {
		s.cumsum = make([]float64, len(weights))
	}
	cumsum := s.cumsum[:len(weights)]

	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, &SamplingError{Weights: weights,
				Reason: fmt.Sprintf("invalid weight %v at %d", w, i)}
		}
		total += w
		cumsum[i] = total
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return 0, &SamplingError{Weights: weights,
			Reason: fmt.Sprintf("degenerate total weight %v", total)}
	}

	u := s.rng.Float64() * total
	for i, c := range cumsum {
		if u < c {
			return i, nil
		}
	}
	// u < total always holds; rounding can only leave us here with the
	// last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// Uniform draws an index in [0, n) with probability 1/n each, going
// through Sample so the draw sequence matches the weighted path.
func (s *Sampler) Uniform(n int) (int, error) {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return s.Sample(weights)
}
