package block

import (
	"encoding/binary"
	"io"

	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
	"github.com/wattx-core/consensus/utils"
)

// HashingBlobSize Fixed size RandomX expects for a parent chain hashing
// blob.
const HashingBlobSize = 76

// ParentHeader The minimal fields of a foreign (Monero-shaped) block header
// an AuxPoW proof needs: enough to reproduce its PoW hash and to know the
// Merkle root its coinbase must fold up to.
type ParentHeader struct {
	MajorVersion uint8
	MinorVersion uint8
	Timestamp    uint64
	PrevID       types.Hash
	Nonce        uint32
	MerkleRoot   types.Hash
}

func (p *ParentHeader) BufferLength() int {
	return 2 + utils.UVarInt64Size(p.Timestamp) + types.HashSize + 4 + types.HashSize
}

func (p *ParentHeader) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, p.BufferLength()))
}

func (p *ParentHeader) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	buf = preAllocatedBuf
	buf = append(buf, p.MajorVersion, p.MinorVersion)
	buf = binary.AppendUvarint(buf, p.Timestamp)
	buf = append(buf, p.PrevID[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, p.Nonce)
	buf = append(buf, p.MerkleRoot[:]...)
	return buf, nil
}

func (p *ParentHeader) FromReader(reader utils.ReaderAndByteReader) (err error) {
	if p.MajorVersion, err = reader.ReadByte(); err != nil {
		return err
	}
	if p.MinorVersion, err = reader.ReadByte(); err != nil {
		return err
	}
	if p.Timestamp, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return err
	}
	if _, err = io.ReadFull(reader, p.PrevID[:]); err != nil {
		return err
	}
	if err = binary.Read(reader, binary.LittleEndian, &p.Nonce); err != nil {
		return err
	}
	if _, err = io.ReadFull(reader, p.MerkleRoot[:]); err != nil {
		return err
	}
	return nil
}

// Id Parent block identifier: SHA256d over the header fields up to and
// including the nonce. The Merkle root is bound separately through the
// coinbase inclusion proof.
func (p *ParentHeader) Id() types.Hash {
	buf := make([]byte, 0, p.BufferLength()-types.HashSize)
	buf = append(buf, p.MajorVersion, p.MinorVersion)
	buf = binary.AppendUvarint(buf, p.Timestamp)
	buf = append(buf, p.PrevID[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, p.Nonce)
	return crypto.DoubleSHA256(buf)
}

// HashingBlob The fixed 76-byte blob the parent chain's PoW function
// consumes, zero padded past the serialized fields.
func (p *ParentHeader) HashingBlob() (blob [HashingBlobSize]byte) {
	buf, _ := p.MarshalBinary()
	copy(blob[:], buf)
	return blob
}

func (p *ParentHeader) IsNull() bool {
	return p.PrevID == types.ZeroHash
}
