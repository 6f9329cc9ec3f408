package auxpow

import (
	"encoding/binary"

	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
)

// MergeMiningTag Tag byte marking a merge-mining commitment inside a
// parent coinbase
const MergeMiningTag = 0x03

// TagSize Full commitment record: tag byte, depth byte, 32-byte root
const TagSize = 1 + 1 + types.HashSize

// OpReturn First opcode of a provably unspendable output script
const OpReturn = 0x6a

// ParseMergeMiningTag Scans extra for a commitment record
// [0x03][depth:1][root:32]. The record is located as a substring, not at a
// fixed offset, since miners put arbitrary data around it.
func ParseMergeMiningTag(extra []byte) (root types.Hash, depth uint8, found bool) {
	for i := 0; i+TagSize <= len(extra); i++ {
		if extra[i] == MergeMiningTag {
			depth = extra[i+1]
			copy(root[:], extra[i+2:i+2+types.HashSize])
			return root, depth, true
		}
	}
	return types.ZeroHash, 0, false
}

// BuildMergeMiningTag Encodes the commitment record a miner embeds in the
// parent coinbase.
func BuildMergeMiningTag(root types.Hash, depth uint8) []byte {
	tag := make([]byte, 0, TagSize)
	tag = append(tag, MergeMiningTag, depth)
	tag = append(tag, root[:]...)
	return tag
}

// CalcAuxChainMerkleRoot The commitment value for one aux block: SHA256d
// over the aux block hash and the chain id. Binding the chain id into the
// committed value itself stops a commitment mined for another chain from
// being swapped in.
func CalcAuxChainMerkleRoot(hashAuxBlock types.Hash, chainID int32) types.Hash {
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], uint32(chainID))
	return crypto.DoubleSHA256(hashAuxBlock[:], idBuf[:])
}
