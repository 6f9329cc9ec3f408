package block

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
	"github.com/wattx-core/consensus/utils"
)

const (
	// HeaderSize Base wire size of a header, before any Equihash solution
	HeaderSize = 4 + types.HashSize + types.HashSize + 4 + 4 + 4

	// MiningBlobSize Fixed size of the RandomX mining blob
	MiningBlobSize = 80

	// maxSolutionSize Upper bound on an attached solution read off the
	// wire. The only algorithm carrying one (Equihash 200,9) uses 1344
	// bytes; the exact size is enforced during validation.
	maxSolutionSize = 16_384
)

var ErrOversizedSolution = errors.New("header solution exceeds maximum size")

// Header Aux chain block header. The base wire form is the usual 80 bytes;
// EQUIHASH headers append their solution, length-prefixed.
type Header struct {
	Version    int32
	PrevBlock  types.Hash
	MerkleRoot types.Hash
	Time       uint32
	Bits       uint32
	Nonce      uint32

	// EquihashSolution Present if and only if the version's algorithm
	// byte is EQUIHASH
	EquihashSolution []byte
}

func (h *Header) Algorithm() algorithm.Algorithm {
	return algorithm.FromVersion(h.Version)
}

func (h *Header) Decoded() algorithm.DecodedVersion {
	return algorithm.DecodeVersion(h.Version)
}

// AppendBase Serializes the 80-byte base header.
func (h *Header) AppendBase(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Time)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	buf = binary.LittleEndian.AppendUint32(buf, h.Nonce)
	return buf
}

func (h *Header) BaseBytes() []byte {
	return h.AppendBase(make([]byte, 0, HeaderSize))
}

func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, h.BufferLength()))
}

func (h *Header) BufferLength() int {
	n := HeaderSize
	if h.Algorithm() == algorithm.EQUIHASH {
		n += utils.UVarInt64Size(uint64(len(h.EquihashSolution))) + len(h.EquihashSolution)
	}
	return n
}

func (h *Header) AppendBinary(preAllocatedBuf []byte) (buf []byte, err error) {
	buf = h.AppendBase(preAllocatedBuf)
	if h.Algorithm() == algorithm.EQUIHASH {
		buf = binary.AppendUvarint(buf, uint64(len(h.EquihashSolution)))
		buf = append(buf, h.EquihashSolution...)
	}
	return buf, nil
}

func (h *Header) FromReader(reader utils.ReaderAndByteReader) (err error) {
	var version uint32
	if err = binary.Read(reader, binary.LittleEndian, &version); err != nil {
		return err
	}
	h.Version = int32(version)
	if _, err = io.ReadFull(reader, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err = io.ReadFull(reader, h.MerkleRoot[:]); err != nil {
		return err
	}
	if err = binary.Read(reader, binary.LittleEndian, &h.Time); err != nil {
		return err
	}
	if err = binary.Read(reader, binary.LittleEndian, &h.Bits); err != nil {
		return err
	}
	if err = binary.Read(reader, binary.LittleEndian, &h.Nonce); err != nil {
		return err
	}

	h.EquihashSolution = nil
	if h.Algorithm() == algorithm.EQUIHASH {
		size, err := utils.ReadCanonicalUvarint(reader)
		if err != nil {
			return err
		}
		if size > maxSolutionSize {
			return ErrOversizedSolution
		}
		h.EquihashSolution = make([]byte, size)
		if _, err = io.ReadFull(reader, h.EquihashSolution); err != nil {
			return err
		}
	}

	return nil
}

// Hash Block id: SHA256d over the base 80 bytes. The Equihash solution is
// committed through PoW verification, not the id.
func (h *Header) Hash() types.Hash {
	var buf [HeaderSize]byte
	h.AppendBase(buf[:0])
	return crypto.DoubleSHA256(buf[:])
}

// SealBytes Header bytes hashed for the Ethash seal: everything except the
// nonce, which the algorithm takes separately.
func (h *Header) SealBytes() []byte {
	buf := make([]byte, 0, HeaderSize-4)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Time)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	return buf
}

// MiningBlob Serializes the header into the 80-byte external miner blob.
// The nonce sits at bytes 39-42 where stock RandomX miners expect to
// roll it:
//
//	[0:32]  previous block hash
//	[32:36] version, little endian
//	[36:39] low three bytes of nBits
//	[39:43] nonce, little endian
//	[43:47] time, little endian
//	[47:79] merkle root
//	[79]    high byte of nBits
func (h *Header) MiningBlob() (blob [MiningBlobSize]byte) {
	copy(blob[0:32], h.PrevBlock[:])
	binary.LittleEndian.PutUint32(blob[32:36], uint32(h.Version))
	blob[36] = byte(h.Bits)
	blob[37] = byte(h.Bits >> 8)
	blob[38] = byte(h.Bits >> 16)
	binary.LittleEndian.PutUint32(blob[39:43], h.Nonce)
	binary.LittleEndian.PutUint32(blob[43:47], h.Time)
	copy(blob[47:79], h.MerkleRoot[:])
	blob[79] = byte(h.Bits >> 24)
	return blob
}

// NonceFromMiningBlob Extracts the nonce an external miner rolled into a
// blob produced by MiningBlob.
func NonceFromMiningBlob(blob []byte) (uint32, error) {
	if len(blob) != MiningBlobSize {
		return 0, errors.New("wrong mining blob size")
	}
	return binary.LittleEndian.Uint32(blob[39:43]), nil
}
