package pow

import (
	"encoding/binary"

	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
)

const heavyHashMatrixSize = 64

// xorshift64 Marsaglia generator driving the per-block matrix.
func xorshift64(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// heavyHashMatrix Derives the 64x64 matrix from the block-bound seed. The
// generator state starts from the first eight seed bytes, never zero.
func heavyHashMatrix(seed types.Hash) *[heavyHashMatrixSize][heavyHashMatrixSize]uint64 {
	state := binary.LittleEndian.Uint64(seed[:8])
	if state == 0 {
		state = 1
	}

	matrix := new([heavyHashMatrixSize][heavyHashMatrixSize]uint64)
	for i := 0; i < heavyHashMatrixSize; i++ {
		for j := 0; j < heavyHashMatrixSize; j++ {
			state = xorshift64(state)
			matrix[i][j] = state
		}
	}
	return matrix
}

// HashKHeavyHash kHeavyHash proof hash: SHA3-256 sandwiching a seeded
// matrix-vector product, Kaspa style.
func HashKHeavyHash(data []byte) types.Hash {
	seed := crypto.SHA3_256(data)
	matrix := heavyHashMatrix(seed)

	vecHash := crypto.SHA3_256(data, seed[:])
	var vec [4]uint64
	for i := range vec {
		vec[i] = binary.LittleEndian.Uint64(vecHash[i*8 : i*8+8])
	}

	var product [4]uint64
	for i := 0; i < heavyHashMatrixSize; i++ {
		var sum uint64
		for j := 0; j < heavyHashMatrixSize; j++ {
			sum += matrix[i][j] * vec[j%4]
		}
		product[i%4] ^= sum
	}

	var productBytes [types.HashSize]byte
	for i := range product {
		binary.LittleEndian.PutUint64(productBytes[i*8:i*8+8], product[i])
	}

	xorHash := crypto.SHA3_256(productBytes[:])
	for i := range xorHash {
		xorHash[i] ^= vecHash[i]
	}

	return crypto.SHA3_256(xorHash[:])
}
