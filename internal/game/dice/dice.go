// Package dice rolls dice expressions such as "2d6+1" for scripted
// combat policies.
package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source supplies randomness to rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(v.Int64())
}

// SeededSource is a reproducible Source: the same seeds yield the same values.
type SeededSource struct {
	mu  sync.Mutex
	pcg *mrand.PCG
	rng *mrand.Rand
}

// NewSeededSource returns a PCG-backed Source seeded with (seed1, seed2).
func NewSeededSource(seed1, seed2 uint64) *SeededSource {
	pcg := mrand.NewPCG(seed1, seed2)
	return &SeededSource{pcg: pcg, rng: mrand.New(pcg)}
}

// Seed restarts the sequence from (seed1, seed2).
func (s *SeededSource) Seed(seed1, seed2 uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pcg.Seed(seed1, seed2)
}

// Intn returns a value in [0, n).
//
// Precondition: n > 0.
func (s *SeededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Result is one evaluated expression.
//
// Invariant: Total() == sum(Kept) + Modifier.
type Result struct {
	Expression string
	Kept       []int
	Modifier   int
}

// Total returns the kept dice plus the modifier.
func (r Result) Total() int {
	total := r.Modifier
	for _, d := range r.Kept {
		total += d
	}
	return total
}

// String renders the roll as "2d6+1 [3 5] +1 = 9".
func (r Result) String() string {
	return fmt.Sprintf("%s %v %+d = %d", r.Expression, r.Kept, r.Modifier, r.Total())
}
