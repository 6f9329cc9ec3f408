package auxpow

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/block"
	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/transaction"
	"github.com/wattx-core/consensus/types"
)

const testChainID = int32(0x5754)

var auxBlockHash = crypto.DoubleSHA256([]byte("aux block"))

// validProof builds the minimal passing proof: depth-0 commitment in the
// coinbase scriptSig, parent Merkle root equal to the coinbase txid.
func validProof() *AuxPow {
	root := CalcAuxChainMerkleRoot(auxBlockHash, testChainID)

	coinbase := transaction.Coinbase{
		Version: 1,
		Inputs: []transaction.Input{{
			PrevIndex: 0xffffffff,
			ScriptSig: BuildMergeMiningTag(root, 0),
			Sequence:  0xffffffff,
		}},
		Outputs: []transaction.Output{{Value: 50_0000_0000}},
	}

	parent := block.ParentHeader{
		MajorVersion: 16,
		MinorVersion: 16,
		Timestamp:    1700000000,
		PrevID:       crypto.DoubleSHA256([]byte("parent prev")),
		Nonce:        42,
		MerkleRoot:   coinbase.TxID(),
	}

	return NewProof(parent, coinbase, nil, 0, testChainID)
}

func TestCheck(t *testing.T) {
	if err := validProof().Check(auxBlockHash, testChainID); err != nil {
		t.Fatalf("valid proof rejected: %s", err)
	}
}

func TestCheckChainIDMismatch(t *testing.T) {
	if err := validProof().Check(auxBlockHash, testChainID+1); !errors.Is(err, ErrChainIDMismatch) {
		t.Errorf("expected ErrChainIDMismatch, got %v", err)
	}
}

func TestCheckTamper(t *testing.T) {
	// different aux block than the one committed to
	other := auxBlockHash
	other[0]++
	if err := validProof().Check(other, testChainID); !errors.Is(err, ErrCommitmentMismatch) {
		t.Errorf("expected ErrCommitmentMismatch, got %v", err)
	}

	// flip a byte of the embedded commitment
	p := validProof()
	p.Coinbase.Inputs[0].ScriptSig[10]++
	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrCommitmentMismatch) {
		t.Errorf("expected ErrCommitmentMismatch, got %v", err)
	}

	// strip the tag byte so no commitment is found
	p = validProof()
	p.Coinbase.Inputs[0].ScriptSig[0] = 0x00
	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrCommitmentNotFound) {
		t.Errorf("expected ErrCommitmentNotFound, got %v", err)
	}

	// a wrong chain id stored in the proof fails the replay check
	p = validProof()
	p.ChainID = testChainID + 1
	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrChainIDMismatch) {
		t.Errorf("expected ErrChainIDMismatch, got %v", err)
	}

	// break the coinbase inclusion proof
	p = validProof()
	p.Parent.MerkleRoot[0]++
	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrCoinbaseMerkleMismatch) {
		t.Errorf("expected ErrCoinbaseMerkleMismatch, got %v", err)
	}

	// tamper with the coinbase branch
	p = validProof()
	txid := p.Coinbase.TxID()
	sibling := crypto.DoubleSHA256([]byte("sibling"))
	p.CoinbaseBranch = MerkleBranch{Hashes: []types.Hash{sibling}, Index: 0}
	p.Parent.MerkleRoot = crypto.DoubleSHA256(txid[:], sibling[:])
	if err := p.Check(auxBlockHash, testChainID); err != nil {
		t.Fatalf("deeper valid proof rejected: %s", err)
	}
	p.CoinbaseBranch.Hashes[0][5]++
	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrCoinbaseMerkleMismatch) {
		t.Errorf("expected ErrCoinbaseMerkleMismatch, got %v", err)
	}
}

func TestCheckCommitmentInOpReturn(t *testing.T) {
	p := validProof()
	root := CalcAuxChainMerkleRoot(auxBlockHash, testChainID)

	// move the commitment out of the scriptSig into an OP_RETURN output
	p.Coinbase.Inputs[0].ScriptSig = []byte{0x01, 0x02}
	p.Coinbase.Outputs = append(p.Coinbase.Outputs, transaction.Output{
		ScriptPubKey: append([]byte{OpReturn}, BuildMergeMiningTag(root, 0)...),
	})
	p.Parent.MerkleRoot = p.Coinbase.TxID()

	if err := p.Check(auxBlockHash, testChainID); err != nil {
		t.Fatalf("OP_RETURN commitment rejected: %s", err)
	}
}

func TestCheckChainBranch(t *testing.T) {
	// two aux chains: our commitment is one leaf of a two-leaf tree
	expected := CalcAuxChainMerkleRoot(auxBlockHash, testChainID)
	sibling := CalcAuxChainMerkleRoot(crypto.DoubleSHA256([]byte("other aux")), 0x1234)
	treeRoot := crypto.DoubleSHA256(expected[:], sibling[:])

	p := validProof()
	p.ChainBranch = MerkleBranch{Hashes: []types.Hash{sibling}, Index: 0}
	p.Coinbase.Inputs[0].ScriptSig = BuildMergeMiningTag(treeRoot, 1)
	p.Parent.MerkleRoot = p.Coinbase.TxID()

	if err := p.Check(auxBlockHash, testChainID); err != nil {
		t.Fatalf("multi-chain proof rejected: %s", err)
	}

	// replaying the same proof for the sibling's chain id fails
	if err := p.Check(auxBlockHash, 0x1234); !errors.Is(err, ErrChainIDMismatch) {
		t.Errorf("expected ErrChainIDMismatch, got %v", err)
	}
}

func TestCheckMalformedCoinbase(t *testing.T) {
	p := validProof()
	root := CalcAuxChainMerkleRoot(auxBlockHash, testChainID)
	p.Coinbase.Inputs = nil
	p.Coinbase.Outputs = []transaction.Output{{
		ScriptPubKey: append([]byte{OpReturn}, BuildMergeMiningTag(root, 0)...),
	}}
	p.Parent.MerkleRoot = p.Coinbase.TxID()

	if err := p.Check(auxBlockHash, testChainID); !errors.Is(err, ErrMalformedCoinbase) {
		t.Errorf("expected ErrMalformedCoinbase, got %v", err)
	}
}

func TestCalcAuxChainMerkleRootAntiReplay(t *testing.T) {
	h := crypto.DoubleSHA256([]byte("some block"))

	if CalcAuxChainMerkleRoot(h, 1) == CalcAuxChainMerkleRoot(h, 2) {
		t.Error("different chain ids produced the same commitment")
	}
	if CalcAuxChainMerkleRoot(h, testChainID) != CalcAuxChainMerkleRoot(h, testChainID) {
		t.Error("commitment not deterministic")
	}
}

func TestMerkleBranchRoot(t *testing.T) {
	leaf := crypto.DoubleSHA256([]byte("leaf"))

	// empty branch: leaf is the root
	empty := MerkleBranch{}
	if empty.Root(leaf) != leaf {
		t.Error("empty branch must return the leaf")
	}

	// index bits pick pair order, LSB first
	a := crypto.DoubleSHA256([]byte("a"))
	b := crypto.DoubleSHA256([]byte("b"))

	left := MerkleBranch{Hashes: []types.Hash{a, b}, Index: 0}
	want := crypto.DoubleSHA256(leaf[:], a[:])
	want = crypto.DoubleSHA256(want[:], b[:])
	if left.Root(leaf) != want {
		t.Error("index 0 fold mismatch")
	}

	right := MerkleBranch{Hashes: []types.Hash{a, b}, Index: 3}
	want = crypto.DoubleSHA256(a[:], leaf[:])
	want = crypto.DoubleSHA256(b[:], want[:])
	if right.Root(leaf) != want {
		t.Error("index 3 fold mismatch")
	}
}

func TestParseMergeMiningTag(t *testing.T) {
	root := crypto.DoubleSHA256([]byte("root"))

	// tag surrounded by arbitrary bytes is still found
	extra := append([]byte{0xde, 0xad, 0xbe, 0xef}, BuildMergeMiningTag(root, 7)...)
	extra = append(extra, 0x00, 0x01)

	got, depth, found := ParseMergeMiningTag(extra)
	if !found || got != root || depth != 7 {
		t.Errorf("tag not recovered: found=%v depth=%d", found, depth)
	}

	// truncated record is not a match
	if _, _, found = ParseMergeMiningTag(extra[:len(extra)-10]); found {
		t.Error("truncated tag reported as found")
	}

	if _, _, found = ParseMergeMiningTag(nil); found {
		t.Error("empty extra reported as found")
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	base := block.Header{
		Version:    algorithm.SetVersion(1, algorithm.RANDOMX),
		PrevBlock:  crypto.DoubleSHA256([]byte("prev")),
		MerkleRoot: crypto.DoubleSHA256([]byte("merkle")),
		Time:       1700000000,
		Bits:       0x1d00ffff,
		Nonce:      12345,
	}

	for _, hdr := range []BlockHeader{
		NewBlockHeader(base),
		NewBlockHeaderWithProof(base, validProof()),
	} {
		buf, err := hdr.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		var decoded BlockHeader
		if err = decoded.FromReader(bytes.NewReader(buf)); err != nil {
			t.Fatal(err)
		}

		if !decoded.Consistent() {
			t.Fatal("decoded header inconsistent")
		}
		if decoded.Hash() != hdr.Hash() {
			t.Error("hash changed over the wire")
		}
		if (decoded.Proof != nil) != (hdr.Proof != nil) {
			t.Error("proof presence changed over the wire")
		}
		if hdr.Proof != nil {
			if err = decoded.Proof.Check(auxBlockHash, testChainID); err != nil {
				t.Errorf("decoded proof no longer valid: %s", err)
			}
		}
	}
}

func TestBlockHeaderInconsistentRefusesToSerialize(t *testing.T) {
	hdr := NewBlockHeader(block.Header{Version: 1})
	hdr.Version = algorithm.SetAuxPow(hdr.Version, true)

	if _, err := hdr.MarshalBinary(); !errors.Is(err, ErrMissingAuxProof) {
		t.Errorf("expected ErrMissingAuxProof, got %v", err)
	}
}
