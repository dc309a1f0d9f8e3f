package sampling

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Stream is an explicit, seedable random source threaded through every
// generation call. It is not safe for concurrent use; parallel workers each
// own their own Stream.
type Stream struct {
	*rand.Rand
	src *rand.ChaCha8
}

// NewStream returns the stream identified by (seed, id). Distinct ids under
// the same seed are independent; the same pair always yields the same values.
func NewStream(seed, id uint64) *Stream {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], id)
	copy(key[16:], "cmdsynth/stream!")

	src := rand.NewChaCha8(key)
	return &Stream{Rand: rand.New(src), src: src}
}

// Read fills p with random bytes, so a Stream can back uuid generation.
func (s *Stream) Read(p []byte) (int, error) {
	return s.src.Read(p)
}

// Bernoulli reports true with probability p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.Float64() < p
}

// IntRange returns a uniform integer in [lo, hi].
func (s *Stream) IntRange(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

// LogNormal draws exp(N(mu, sigma^2)).
func (s *Stream) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*s.NormFloat64())
}

// Choice returns a uniformly chosen element of items. items must be non-empty.
func Choice[T any](s *Stream, items []T) T {
	return items[s.IntN(len(items))]
}
