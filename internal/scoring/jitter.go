package scoring

import "math/rand/v2"

// Jitter supplies the random variety term. Intn returns a value in [0, n].
type Jitter interface {
	Intn(n int) int
}

// JitterFunc adapts a plain function to Jitter.
type JitterFunc func(n int) int

func (f JitterFunc) Intn(n int) int { return f(n) }

// NoJitter makes scores reproducible.
var NoJitter Jitter = JitterFunc(func(int) int { return 0 })

// NewRandJitter returns a seeded jitter source.
func NewRandJitter(seed uint64) Jitter {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return JitterFunc(func(n int) int {
		if n <= 0 {
			return 0
		}
		return r.IntN(n + 1)
	})
}
