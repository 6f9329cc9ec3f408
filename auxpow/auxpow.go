package auxpow

import (
	"encoding/binary"

	"github.com/wattx-core/consensus/block"
	"github.com/wattx-core/consensus/transaction"
	"github.com/wattx-core/consensus/types"
	"github.com/wattx-core/consensus/utils"
)

// AuxPow A merged-mining proof: the parent chain's coinbase carrying the
// aux commitment, the Merkle branch placing that coinbase in the parent
// block, an optional second branch for multi-aux-chain trees, the parent
// header itself, and the chain id the proof was mined for. Built once by
// the miner, never mutated afterwards.
type AuxPow struct {
	Coinbase       transaction.Coinbase
	CoinbaseBranch MerkleBranch
	ChainBranch    MerkleBranch
	Parent         block.ParentHeader
	ChainID        int32
}

// NewProof Assembles a proof from a solved parent block. The common single
// aux chain case needs no chain branch.
func NewProof(parent block.ParentHeader, coinbase transaction.Coinbase, coinbasePath []types.Hash, coinbaseIndex uint32, chainID int32) *AuxPow {
	return &AuxPow{
		Coinbase: coinbase,
		CoinbaseBranch: MerkleBranch{
			Hashes: coinbasePath,
			Index:  coinbaseIndex,
		},
		Parent:  parent,
		ChainID: chainID,
	}
}

// Check Validates the proof against an aux block hash, in fixed order,
// stopping at the first failure:
//
//  1. the proof's chain id matches the expected one (anti-replay)
//  2. the parent coinbase embeds a commitment record
//  3. the expected commitment is derived from the aux block hash and
//     chain id, folded through the chain branch when one is present
//  4. embedded and expected commitments match
//  5. the coinbase folds up to the parent block's Merkle root
//  6. the coinbase has at least one input
//
// Pure: diagnostics are the returned error, nothing is logged here.
func (a *AuxPow) Check(hashAuxBlock types.Hash, expectedChainID int32) error {
	if a.ChainID != expectedChainID {
		return ErrChainIDMismatch
	}

	embedded, found := a.commitment()
	if !found {
		return ErrCommitmentNotFound
	}

	expected := CalcAuxChainMerkleRoot(hashAuxBlock, a.ChainID)
	if !a.ChainBranch.IsNull() {
		expected = a.ChainBranch.Root(expected)
	}

	if embedded != expected {
		return ErrCommitmentMismatch
	}

	if a.CoinbaseBranch.Root(a.Coinbase.TxID()) != a.Parent.MerkleRoot {
		return ErrCoinbaseMerkleMismatch
	}

	if len(a.Coinbase.Inputs) == 0 {
		return ErrMalformedCoinbase
	}

	return nil
}

// commitment Extracts the merge-mining commitment from the parent
// coinbase: the first input's scriptSig first, OP_RETURN outputs as a
// fallback.
func (a *AuxPow) commitment() (root types.Hash, found bool) {
	if len(a.Coinbase.Inputs) > 0 {
		if root, _, found = ParseMergeMiningTag(a.Coinbase.Inputs[0].ScriptSig); found {
			return root, true
		}
	}

	for i := range a.Coinbase.Outputs {
		script := a.Coinbase.Outputs[i].ScriptPubKey
		if len(script) >= TagSize+1 && script[0] == OpReturn {
			if root, _, found = ParseMergeMiningTag(script[1:]); found {
				return root, true
			}
		}
	}

	return types.ZeroHash, false
}

func (a *AuxPow) BufferLength() int {
	return a.Coinbase.BufferLength() + a.CoinbaseBranch.BufferLength() + a.ChainBranch.BufferLength() + a.Parent.BufferLength() + 4
}

func (a *AuxPow) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, a.BufferLength()))
}

func (a *AuxPow) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	if buf, err = a.Coinbase.AppendBinary(preAllocatedBuf); err != nil {
		return nil, err
	}
	if buf, err = a.CoinbaseBranch.AppendBinary(buf); err != nil {
		return nil, err
	}
	if buf, err = a.ChainBranch.AppendBinary(buf); err != nil {
		return nil, err
	}
	if buf, err = a.Parent.AppendBinary(buf); err != nil {
		return nil, err
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(a.ChainID))
	return buf, nil
}

func (a *AuxPow) FromReader(reader utils.ReaderAndByteReader) (err error) {
	if err = a.Coinbase.FromReader(reader); err != nil {
		return err
	}
	if err = a.CoinbaseBranch.FromReader(reader); err != nil {
		return err
	}
	if err = a.ChainBranch.FromReader(reader); err != nil {
		return err
	}
	if err = a.Parent.FromReader(reader); err != nil {
		return err
	}
	var chainID uint32
	if err = binary.Read(reader, binary.LittleEndian, &chainID); err != nil {
		return err
	}
	a.ChainID = int32(chainID)
	return nil
}
