package types

import (
	"github.com/holiman/uint256"
)

// Compact ("nBits") target representation: a base-256 floating point number
// with a 1-byte exponent and a 23-bit mantissa, plus a sign bit that is
// never valid for a target.

// DecodeCompact Expands a compact encoded target into a 256-bit integer.
// negative and overflow report invalid encodings and must be checked by
// the caller before the value is used.
func DecodeCompact(nBits uint32) (target *uint256.Int, negative, overflow bool) {
	size := nBits >> 24
	word := nBits & 0x007fffff

	target = new(uint256.Int)
	if size <= 3 {
		word >>= 8 * (3 - size)
		target.SetUint64(uint64(word))
	} else {
		target.SetUint64(uint64(word))
		target.Lsh(target, 8*uint(size-3))
	}

	negative = word != 0 && (nBits&0x00800000) != 0
	overflow = word != 0 && ((size > 34) ||
		(word > 0xff && size > 33) ||
		(word > 0xffff && size > 32))
	return target, negative, overflow
}

// EncodeCompact Packs a 256-bit target into compact form. Lossy: only the
// top 23 bits of precision survive.
func EncodeCompact(target *uint256.Int) uint32 {
	size := uint32((target.BitLen() + 7) / 8)

	var compact uint32
	if size <= 3 {
		compact = uint32(target.Uint64() << (8 * (3 - size)))
	} else {
		t := new(uint256.Int).Rsh(target, 8*uint(size-3))
		compact = uint32(t.Uint64())
	}

	// Mantissa sign bit set means the number is one byte bigger
	if compact&0x00800000 != 0 {
		compact >>= 8
		size++
	}

	return compact | size<<24
}

// TargetFromHash Interprets a PoW hash as a 256-bit little-endian number.
func TargetFromHash(h Hash) *uint256.Int {
	var be [HashSize]byte
	for i := range h {
		be[HashSize-1-i] = h[i]
	}
	return new(uint256.Int).SetBytes(be[:])
}

// HashMeetsTarget Reports whether hash ≤ target. Equality passes.
func HashMeetsTarget(h Hash, target *uint256.Int) bool {
	return TargetFromHash(h).Cmp(target) <= 0
}
