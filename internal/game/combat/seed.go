package combat

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// SeedFor derives a deterministic fight seed from identifying parts
// (e.g. profile id, gate id, gate end time). Parts are length-prefixed,
// so ("ab","c") and ("a","bc") give different seeds.
func SeedFor(parts ...string) uint64 {
	h, _ := blake2b.New256(nil) // nil key never fails
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}
