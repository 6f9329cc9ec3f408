package crypto

import (
	"crypto/sha256"

	"git.gammaspectra.live/P2Pool/sha3"
	"github.com/wattx-core/consensus/types"
)

// DoubleSHA256 SHA256d over the concatenation of data.
func DoubleSHA256(data ...[]byte) (result types.Hash) {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	sum := h.Sum(nil)
	return sha256.Sum256(sum)
}

func Keccak256(data ...[]byte) (result types.Hash) {
	h := GetKeccak256Hasher()
	defer PutKeccak256Hasher(h)
	for _, b := range data {
		_, _ = h.Write(b)
	}
	HashFastSum(h, result[:])

	return
}

func SHA3_256(data ...[]byte) (result types.Hash) {
	h := GetSHA3256Hasher()
	defer PutSHA3256Hasher(h)
	for _, b := range data {
		_, _ = h.Write(b)
	}
	HashFastSum(h, result[:])

	return
}

// HashFastSum sha3.Sum clones the state by allocating memory. prevent that.
// b must be pre-allocated to the expected size, or larger
func HashFastSum(hash *sha3.HasherState, b []byte) []byte {
	_ = b[31] // bounds check hint to compiler; see golang.org/issue/14808
	_, _ = hash.Read(b[:hash.Size()])
	return b
}
