package randomx

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/wattx-core/consensus/types"
)

// Hasher A pool of RandomX virtual machines keyed by seed. Hash computes
// against the state matching key, reinitializing the least recently used
// state when no cached state has it. Reinitialization is expensive
// (seconds to tens of seconds in full-memory mode) and must only happen
// on key change; the implementations serialize it against all in-flight
// hashing.
type Hasher interface {
	Hash(key []byte, input []byte) (types.Hash, error)
	OptionFlags(flags ...Flag) error
	OptionNumberOfCachedStates(n int) error
	Close()
}

type Flag int

const (
	FlagLargePages Flag = 1 << iota
	FlagFullMemory
	FlagSecure
)

// KeyEpoch The key epoch covering height.
func KeyEpoch(height, epochBlocks uint64) uint64 {
	return height / epochBlocks
}

// SeedKey Derives the chain's RandomX key for height: SHA256 over the
// epoch number and the genesis hash. The key rolls every epochBlocks
// blocks.
func SeedKey(height, epochBlocks uint64, genesisHash types.Hash) []byte {
	var buf [4 + types.HashSize]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(KeyEpoch(height, epochBlocks)))
	copy(buf[4:], genesisHash[:])
	key := sha256.Sum256(buf[:])
	return key[:]
}
