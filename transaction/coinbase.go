package transaction

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
	"github.com/wattx-core/consensus/utils"
)

// Parent chain coinbase transaction, in Bitcoin wire form. Only what AuxPoW
// verification needs: the scriptSig and outputs carry the merge-mining
// commitment, the txid anchors the inclusion proof.

const (
	// maxScriptSize Upper bound on any script read off the wire
	maxScriptSize = 100_000
	// maxTxSlots Upper bound on input/output counts read off the wire
	maxTxSlots = 16_384
)

var ErrOversizedField = errors.New("transaction field exceeds maximum size")

type Input struct {
	PrevHash  types.Hash
	PrevIndex uint32
	ScriptSig []byte
	Sequence  uint32
}

type Output struct {
	Value        uint64
	ScriptPubKey []byte
}

type Coinbase struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

func (tx *Coinbase) BufferLength() int {
	n := 4 + utils.UVarInt64Size(uint64(len(tx.Inputs))) + utils.UVarInt64Size(uint64(len(tx.Outputs))) + 4
	for i := range tx.Inputs {
		n += types.HashSize + 4 + utils.UVarInt64Size(uint64(len(tx.Inputs[i].ScriptSig))) + len(tx.Inputs[i].ScriptSig) + 4
	}
	for i := range tx.Outputs {
		n += 8 + utils.UVarInt64Size(uint64(len(tx.Outputs[i].ScriptPubKey))) + len(tx.Outputs[i].ScriptPubKey)
	}
	return n
}

func (tx *Coinbase) MarshalBinary() ([]byte, error) {
	return tx.AppendBinary(make([]byte, 0, tx.BufferLength()))
}

func (tx *Coinbase) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	buf = preAllocatedBuf

	buf = binary.LittleEndian.AppendUint32(buf, tx.Version)

	buf = binary.AppendUvarint(buf, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		buf = append(buf, in.PrevHash[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.PrevIndex)
		buf = binary.AppendUvarint(buf, uint64(len(in.ScriptSig)))
		buf = append(buf, in.ScriptSig...)
		buf = binary.LittleEndian.AppendUint32(buf, in.Sequence)
	}

	buf = binary.AppendUvarint(buf, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		buf = binary.LittleEndian.AppendUint64(buf, out.Value)
		buf = binary.AppendUvarint(buf, uint64(len(out.ScriptPubKey)))
		buf = append(buf, out.ScriptPubKey...)
	}

	buf = binary.LittleEndian.AppendUint32(buf, tx.LockTime)

	return buf, nil
}

func (tx *Coinbase) FromReader(reader utils.ReaderAndByteReader) (err error) {
	var count uint64

	if err = binary.Read(reader, binary.LittleEndian, &tx.Version); err != nil {
		return err
	}

	if count, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return err
	}
	if count > maxTxSlots {
		return ErrOversizedField
	}
	tx.Inputs = make([]Input, count)
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if _, err = io.ReadFull(reader, in.PrevHash[:]); err != nil {
			return err
		}
		if err = binary.Read(reader, binary.LittleEndian, &in.PrevIndex); err != nil {
			return err
		}
		if in.ScriptSig, err = readScript(reader); err != nil {
			return err
		}
		if err = binary.Read(reader, binary.LittleEndian, &in.Sequence); err != nil {
			return err
		}
	}

	if count, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return err
	}
	if count > maxTxSlots {
		return ErrOversizedField
	}
	tx.Outputs = make([]Output, count)
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if err = binary.Read(reader, binary.LittleEndian, &out.Value); err != nil {
			return err
		}
		if out.ScriptPubKey, err = readScript(reader); err != nil {
			return err
		}
	}

	return binary.Read(reader, binary.LittleEndian, &tx.LockTime)
}

func readScript(reader utils.ReaderAndByteReader) ([]byte, error) {
	size, err := utils.ReadCanonicalUvarint(reader)
	if err != nil {
		return nil, err
	}
	if size > maxScriptSize {
		return nil, ErrOversizedField
	}
	script := make([]byte, size)
	if _, err = io.ReadFull(reader, script); err != nil {
		return nil, err
	}
	return script, nil
}

// TxID SHA256d of the serialized transaction.
func (tx *Coinbase) TxID() types.Hash {
	buf, _ := tx.MarshalBinary()
	return crypto.DoubleSHA256(buf)
}
