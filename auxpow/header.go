package auxpow

import (
	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/block"
	"github.com/wattx-core/consensus/utils"
)

// BlockHeader An aux chain header together with its optional proof. The
// wire rule is strict both ways: the proof is present exactly when the
// version's AuxPoW bit is set. A flagged header without a proof never
// deserializes; constructing one by hand fails validation with
// ErrMissingAuxProof.
type BlockHeader struct {
	block.Header
	Proof *AuxPow
}

// NewBlockHeader Wraps a plain header, clearing the AuxPoW bit.
func NewBlockHeader(h block.Header) BlockHeader {
	h.Version = algorithm.SetAuxPow(h.Version, false)
	return BlockHeader{Header: h}
}

// NewBlockHeaderWithProof Wraps a header with its proof, setting the
// AuxPoW bit.
func NewBlockHeaderWithProof(h block.Header, proof *AuxPow) BlockHeader {
	h.Version = algorithm.SetAuxPow(h.Version, true)
	return BlockHeader{Header: h, Proof: proof}
}

// Consistent Reports whether flag and payload agree.
func (h *BlockHeader) Consistent() bool {
	return algorithm.HasAuxPow(h.Version) == (h.Proof != nil)
}

func (h *BlockHeader) BufferLength() int {
	n := h.Header.BufferLength()
	if h.Proof != nil {
		n += h.Proof.BufferLength()
	}
	return n
}

func (h *BlockHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, h.BufferLength()))
}

func (h *BlockHeader) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	if !h.Consistent() {
		return nil, ErrMissingAuxProof
	}
	if buf, err = h.Header.AppendBinary(preAllocatedBuf); err != nil {
		return nil, err
	}
	if h.Proof != nil {
		if buf, err = h.Proof.AppendBinary(buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (h *BlockHeader) FromReader(reader utils.ReaderAndByteReader) (err error) {
	if err = h.Header.FromReader(reader); err != nil {
		return err
	}
	if algorithm.HasAuxPow(h.Version) {
		h.Proof = &AuxPow{}
		if err = h.Proof.FromReader(reader); err != nil {
			return err
		}
	} else {
		h.Proof = nil
	}
	return nil
}
