// Package dice — явный PRNG и хелперы бросков.
//
// Все игровые броски (редкость, генерация предметов, бой) принимают
// *rand.Rand параметром. Глобальный генератор не используется, поэтому
// seeded-прогон боя не может сбить чужой поток случайных чисел.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// New returns a PCG generator seeded from a single uint64.
// Same seed → same stream.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// IntRange returns uniform int in [lo, hi] (inclusive).
// If hi < lo, returns lo.
func IntRange(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Range returns uniform float64 in [lo, hi).
// If hi <= lo, returns lo.
func Range(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Chance returns true with probability p (0..1).
func Chance(r *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Percent returns true with probability pct/100.
func Percent(r *rand.Rand, pct float64) bool {
	return Chance(r, pct/100)
}

// NewUUID derives a v4 UUID from r, so seeded runs produce the same ids.
func NewUUID(r *rand.Rand) uuid.UUID {
	id, err := uuid.NewRandomFromReader(reader{r})
	if err != nil {
		return uuid.New()
	}
	return id
}

// reader adapts *rand.Rand to io.Reader.
type reader struct {
	r *rand.Rand
}

func (rr reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := rr.r.Uint64()
		for j := i; j < len(p) && j < i+8; j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}
