package cuporder

import (
	"math/rand"
	"sync"
	"time"
)

// OutcomeSource draws the cup order for a round.
type OutcomeSource interface {
	Draw() Outcome
}

// RandomSource shuffles the symbol set with Fisher-Yates. It is not
// cryptographically secure.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededSource returns a source seeded from the wall clock.
func NewTimeSeededSource() *RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

// Draw returns a uniformly random permutation of A, B, C.
func (s *RandomSource) Draw() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := Outcome(Symbols)
	for i := len(o) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		o[i], o[j] = o[j], o[i]
	}
	return o
}

// FixedSource replays a fixed sequence of outcomes, cycling when exhausted.
// Use it to make rounds reproducible in tests.
type FixedSource struct {
	mu       sync.Mutex
	outcomes []Outcome
	next     int
}

// NewFixedSource returns a source that yields outcomes in order.
func NewFixedSource(outcomes ...Outcome) *FixedSource {
	return &FixedSource{outcomes: outcomes}
}

// Draw returns the next configured outcome. With no outcomes configured it
// returns the canonical order.
func (s *FixedSource) Draw() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.outcomes) == 0 {
		return Outcome(Symbols)
	}
	o := s.outcomes[s.next%len(s.outcomes)]
	s.next++
	return o
}
