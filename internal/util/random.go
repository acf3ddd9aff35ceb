package util

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform integers in [0, n). It lets callers inject
// a deterministic source in tests.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRandom returns a RandomSource backed by the math/rand/v2 global
// generator. It is safe for concurrent use.
func DefaultRandom() RandomSource {
	return globalRandom{}
}

type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// SeededRandom returns a deterministic RandomSource that is safe for
// concurrent use.
func SeededRandom(seed uint64) RandomSource {
	return &lockedRandom{rng: rand.New(rand.NewPCG(seed, seed))}
}
