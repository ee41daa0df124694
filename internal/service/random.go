package service

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the randomness source shared by the quiz components.
// Implementations must be safe for concurrent use.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand guards a *rand.Rand, which is not safe for concurrent use on its own.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a concurrency-safe source seeded with seed.
func NewRandom(seed int64) Random {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRandom returns a source seeded from the wall clock.
func NewTimeSeededRandom() Random {
	return NewRandom(time.Now().UnixNano())
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
