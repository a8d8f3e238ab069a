package garden

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is a uniform random stream. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSources derives the two independent streams the event scheduler needs
// from one seed: one for the hazard draw and one for the chance draw.
func NewSources(seed int64) (events, chances Source) {
	return seededRNG(seed, "event"), seededRNG(seed, "chance")
}

func seededRNG(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for reproducible gardens.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
