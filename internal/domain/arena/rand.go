package arena

import "math/rand"

// Source supplies the uniform randomness consumed by opponent generation and
// outcome resolution. Injecting it keeps battles replayable in tests.
type Source interface {
	// Float64 returns a uniform value in [0,1).
	Float64() float64
	// Intn returns a uniform value in [0,n). n must be positive.
	Intn(n int) int
}

type randSource struct {
	rng *rand.Rand
}

// NewSource wraps math/rand seeded with the given value.
func NewSource(seed int64) Source {
	return randSource{rng: rand.New(rand.NewSource(seed))}
}

func (s randSource) Float64() float64 { return s.rng.Float64() }
func (s randSource) Intn(n int) int   { return s.rng.Intn(n) }
