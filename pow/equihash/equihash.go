package equihash

import (
	"encoding/binary"
	"errors"

	"github.com/dchest/blake2b"
	"github.com/wattx-core/consensus/utils"
)

// Equihash 200,9 solution verification, the ZCash parameterization. The
// solver lives in mining software; consensus only ever verifies.

const (
	N = 200
	K = 9

	CollisionBitLength  = N / (K + 1)                // 20 bits
	CollisionByteLength = (CollisionBitLength + 7) / 8 // 3 bytes
	HashLength          = (K + 1) * CollisionByteLength // 30 bytes
	DigestLength        = N / 4                      // 50 bytes
	NumIndices          = 1 << K                     // 512
	IndexBitLength      = CollisionBitLength + 1     // 21 bits

	// SolutionSize Compressed solution: 512 indices of 21 bits
	SolutionSize = NumIndices * IndexBitLength / 8 // 1344 bytes
)

var (
	ErrWrongSolutionSize = errors.New("equihash: wrong solution size")
	ErrDuplicateIndex    = errors.New("equihash: duplicate index")
	ErrIndexOrder        = errors.New("equihash: indices out of tree order")
	ErrCollisionFailed   = errors.New("equihash: collision bits not zero")
	ErrNonZeroFinal      = errors.New("equihash: final xor not zero")
)

// personalization "ZcashPoW" followed by n and k, little endian
var personal = []byte{
	'Z', 'c', 'a', 's', 'h', 'P', 'o', 'W',
	0xc8, 0x00, 0x00, 0x00,
	0x09, 0x00, 0x00, 0x00,
}

// generateHash Blake2b-50 over input and the little-endian index,
// truncated to the 30 bytes verification folds over.
func generateHash(input []byte, index uint32, out []byte) {
	h, err := blake2b.New(&blake2b.Config{
		Size:   DigestLength,
		Person: personal,
	})
	if err != nil {
		panic(err)
	}

	var indexBytes [4]byte
	binary.LittleEndian.PutUint32(indexBytes[:], index)

	_, _ = h.Write(input)
	_, _ = h.Write(indexBytes[:])

	var digest [DigestLength]byte
	copy(out[:HashLength], h.Sum(digest[:0]))
}

func extractBits(data []byte, bitOffset, bitLength uint) uint32 {
	var result uint32
	byteOffset := bitOffset / 8
	bitShift := bitOffset % 8

	for i := uint(0); i < (bitLength+bitShift+7)/8 && i < 4; i++ {
		if byteOffset+i < uint(len(data)) {
			result |= uint32(data[byteOffset+i]) << (i * 8)
		}
	}

	result >>= bitShift
	result &= 1<<bitLength - 1

	return result
}

func packBits(data []byte, bitOffset, bitLength uint, value uint32) {
	byteOffset := bitOffset / 8
	bitShift := bitOffset % 8

	value &= 1<<bitLength - 1

	for i := uint(0); i < (bitLength+bitShift+7)/8 && i < 4; i++ {
		if byteOffset+i < uint(len(data)) {
			data[byteOffset+i] |= byte(uint64(value) << bitShift >> (i * 8))
		}
	}
}

// ExpandSolution Unpacks a compressed solution into its 512 indices.
func ExpandSolution(compressed []byte) ([]uint32, error) {
	if len(compressed) != SolutionSize {
		return nil, ErrWrongSolutionSize
	}

	indices := make([]uint32, NumIndices)
	for i := range indices {
		indices[i] = extractBits(compressed, uint(i)*IndexBitLength, IndexBitLength)
	}
	return indices, nil
}

// CompressSolution Packs 512 indices into the 1344-byte wire form.
func CompressSolution(indices []uint32) ([]byte, error) {
	if len(indices) != NumIndices {
		return nil, ErrWrongSolutionSize
	}

	compressed := make([]byte, SolutionSize)
	for i, index := range indices {
		packBits(compressed, uint(i)*IndexBitLength, IndexBitLength, index)
	}
	return compressed, nil
}

// validIndicesOrder Duplicate-free and ordered as a proper collision tree:
// at every level the left subtree's first index is smaller than the
// right's.
func validIndicesOrder(indices []uint32) error {
	seen := make(map[uint32]struct{}, len(indices))
	for _, index := range indices {
		if _, ok := seen[index]; ok {
			return ErrDuplicateIndex
		}
		seen[index] = struct{}{}
	}

	for step := 1; step < NumIndices; step *= 2 {
		for i := 0; i < NumIndices; i += step * 2 {
			if indices[i] >= indices[i+step] {
				return ErrIndexOrder
			}
		}
	}

	return nil
}

// Verify Checks a compressed solution against input (the serialized
// header the solver committed to). Nil means the solution is valid.
func Verify(input []byte, solution []byte) error {
	indices, err := ExpandSolution(solution)
	if err != nil {
		return err
	}

	if err = validIndicesOrder(indices); err != nil {
		return err
	}

	hashes := make([][HashLength]byte, NumIndices)
	_ = utils.SplitWork(0, NumIndices, func(workIndex uint64, routineIndex int) error {
		generateHash(input, indices[workIndex], hashes[workIndex][:])
		return nil
	})

	// fold pairs level by level; every pair must collide on the leading
	// 20 bits, the last level must cancel completely
	for level := 0; level < K; level++ {
		step := 1 << level
		collisionLen := CollisionByteLength * (K - level)

		for i := 0; i < NumIndices; i += step * 2 {
			var xor [HashLength]byte
			for j := 0; j < collisionLen; j++ {
				xor[j] = hashes[i][j] ^ hashes[i+step][j]
			}

			if xor[0] != 0 || xor[1] != 0 || xor[2]&0x0f != 0 {
				return ErrCollisionFailed
			}

			if level < K-1 {
				copy(hashes[i][:collisionLen-CollisionByteLength], xor[CollisionByteLength:collisionLen])
			} else {
				for j := 0; j < collisionLen; j++ {
					if xor[j] != 0 {
						return ErrNonZeroFinal
					}
				}
			}
		}
	}

	return nil
}

// IsValidSolutionSize Cheap wire-shape check before full verification.
func IsValidSolutionSize(size int) bool {
	return size == SolutionSize
}
