package crypto

import (
	"sync"

	"git.gammaspectra.live/P2Pool/sha3"
)

var keccakPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256()
	},
}

func GetKeccak256Hasher() *sha3.HasherState {
	return keccakPool.Get().(*sha3.HasherState)
}

func PutKeccak256Hasher(h *sha3.HasherState) {
	h.Reset()
	keccakPool.Put(h)
}

var sha3Pool = sync.Pool{
	New: func() any {
		return sha3.New256()
	},
}

func GetSHA3256Hasher() *sha3.HasherState {
	return sha3Pool.Get().(*sha3.HasherState)
}

func PutSHA3256Hasher(h *sha3.HasherState) {
	h.Reset()
	sha3Pool.Put(h)
}
