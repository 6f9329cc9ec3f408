package types

import (
	"math"
	"math/bits"

	"lukechampine.com/uint128"
)

// DifficultyFromPoW Effective difficulty of a PoW hash, derived from its
// upper 128 bits interpreted as a little-endian number.
func DifficultyFromPoW(powHash Hash) Difficulty {
	if powHash == ZeroHash {
		return ZeroDifficulty
	}

	return Difficulty(uint128.Max.Div(uint128.FromBytes(powHash[16:])))
}

func (d Difficulty) CheckPoW(pow Hash) bool {
	return DifficultyFromPoW(pow).Cmp(d) >= 0
}

// Target Finds a 64-bit target for mining (target = 2^64 / difficulty) and
// rounds up the result of division. Because of that, there's a very small
// chance miners find a hash that meets the target but fails the full
// difficulty check in CheckPoW.
func (d Difficulty) Target() uint64 {
	if d.Hi > 0 {
		return 1
	}

	// division by d.Lo = 1 would not fit in 64 bits
	if d.Lo <= 1 {
		return math.MaxUint64
	}

	q, rem := bits.Div64(1, 0, d.Lo)
	if rem > 0 {
		return q + 1
	}
	return q
}
