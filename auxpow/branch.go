package auxpow

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
	"github.com/wattx-core/consensus/utils"
)

// maxBranchDepth Wire bound on branch length. A Merkle tree over 2^32
// leaves needs only 32 levels; 64 leaves headroom for oversized parent
// trees while still rejecting garbage lengths.
const maxBranchDepth = 64

var ErrOversizedBranch = errors.New("auxpow: merkle branch too deep")

// MerkleBranch Sibling hashes plus the leaf's index, recomputing a root by
// pairwise SHA256d. The index's bits select left/right order, LSB first.
// An empty branch means the leaf is the root.
type MerkleBranch struct {
	Hashes []types.Hash
	Index  uint32
}

func (b *MerkleBranch) IsNull() bool {
	return len(b.Hashes) == 0
}

// Root Folds leaf up through the branch.
func (b *MerkleBranch) Root(leaf types.Hash) types.Hash {
	hash := leaf
	index := b.Index

	for i := range b.Hashes {
		if index&1 != 0 {
			hash = crypto.DoubleSHA256(b.Hashes[i][:], hash[:])
		} else {
			hash = crypto.DoubleSHA256(hash[:], b.Hashes[i][:])
		}
		index >>= 1
	}

	return hash
}

// Verify Reports whether folding leaf up the branch reaches root.
func (b *MerkleBranch) Verify(leaf, root types.Hash) bool {
	return b.Root(leaf) == root
}

func (b *MerkleBranch) BufferLength() int {
	return utils.UVarInt64Size(uint64(len(b.Hashes))) + len(b.Hashes)*types.HashSize + 4
}

func (b *MerkleBranch) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	buf = preAllocatedBuf
	buf = binary.AppendUvarint(buf, uint64(len(b.Hashes)))
	for i := range b.Hashes {
		buf = append(buf, b.Hashes[i][:]...)
	}
	buf = binary.LittleEndian.AppendUint32(buf, b.Index)
	return buf, nil
}

func (b *MerkleBranch) FromReader(reader utils.ReaderAndByteReader) (err error) {
	count, err := utils.ReadCanonicalUvarint(reader)
	if err != nil {
		return err
	}
	if count > maxBranchDepth {
		return ErrOversizedBranch
	}
	b.Hashes = make([]types.Hash, count)
	for i := range b.Hashes {
		if _, err = io.ReadFull(reader, b.Hashes[i][:]); err != nil {
			return err
		}
	}
	return binary.Read(reader, binary.LittleEndian, &b.Index)
}
