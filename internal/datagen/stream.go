//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides seeded random draws and fake data generation.
package datagen

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Stream is the single seeded pseudo-random source shared by every
// generation stage. All draws, including the distribution samplers and the
// faker, consume the same underlying generator, so a given seed always
// reproduces the same dataset. Stages receive the stream explicitly; there
// is no package-level random state.
type Stream struct {
	rng   *rand.Rand
	faker *Faker
}

// NewStream creates a stream seeded for reproducible generation.
func NewStream(seed uint64) *Stream {
	return &Stream{
		rng:   rand.New(rand.NewPCG(seed, seed)),
		faker: NewFakerWithSeed(seed),
	}
}

// Faker returns the fake-data generator tied to this stream's seed.
func (s *Stream) Faker() *Faker {
	return s.faker
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// IntN returns a uniform draw in [0, n).
func (s *Stream) IntN(n int) int {
	return s.rng.IntN(n)
}

// IntRange returns a uniform draw in [min, max] inclusive.
func (s *Stream) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// Uniform returns a uniform draw in [min, max).
func (s *Stream) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Normal returns a draw from Normal(mu, sigma).
func (s *Stream) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.rng}.Rand()
}

// LogNormal returns a draw from LogNormal(mu, sigma).
func (s *Stream) LogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: s.rng}.Rand()
}

// LogUniform returns a log-uniform draw in [min, max). Draws are strictly
// positive and right-skewed; min must be > 0.
func (s *Stream) LogUniform(min, max float64) float64 {
	return math.Exp(s.Uniform(math.Log(min), math.Log(max)))
}

// Bernoulli returns true with probability p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// WeightedIndex returns an index drawn proportionally to weights.
// Weights need not be normalized.
func (s *Stream) WeightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	r := s.rng.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Shuffle randomizes the order of n elements via the supplied swap func.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Perm returns a random permutation of [0, n).
func (s *Stream) Perm(n int) []int {
	return s.rng.Perm(n)
}

// DateBetween returns a uniformly drawn date in [start, end] at day
// granularity, preserving start's location and clock.
func (s *Stream) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, s.rng.IntN(days+1))
}

// Choose returns a random element from the given slice.
func Choose[T any](s *Stream, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[s.IntN(len(items))]
}

// ChooseWeighted returns a random element drawn proportionally to weights.
func ChooseWeighted[T any](s *Stream, items []T, weights []float64) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[s.WeightedIndex(weights)]
}
