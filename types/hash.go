package types

import (
	"database/sql/driver"
	"errors"
	"io"

	fasthex "github.com/tmthrgd/go-hex"
)

const HashSize = 32

var ZeroHash Hash

// Hash A 32-byte identifier or digest, stored in the byte order it appears
// on the wire. When interpreted as a 256-bit number (target comparisons)
// the bytes are little-endian.
type Hash [HashSize]byte

func MustHashFromString(s string) Hash {
	if h, err := HashFromString(s); err != nil {
		panic(err)
	} else {
		return h
	}
}

func HashFromString(s string) (Hash, error) {
	var h Hash
	if len(s) != HashSize*2 {
		return ZeroHash, errors.New("wrong hash size")
	}
	if _, err := fasthex.Decode(h[:], []byte(s)); err != nil {
		return ZeroHash, err
	}
	return h, nil
}

func HashFromBytes(buf []byte) (h Hash) {
	if len(buf) != HashSize {
		return ZeroHash
	}
	copy(h[:], buf)
	return h
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

func (h Hash) Equals(o Hash) bool {
	return h == o
}

func (h Hash) MarshalJSON() ([]byte, error) {
	var buf [HashSize*2 + 2]byte
	buf[0] = '"'
	buf[HashSize*2+1] = '"'
	fasthex.Encode(buf[1:], h[:])
	return buf[:], nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return io.ErrUnexpectedEOF
	}
	if len(b) != HashSize*2+2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("invalid hash")
	}
	if _, err := fasthex.Decode(h[:], b[1:len(b)-1]); err != nil {
		return err
	}
	return nil
}

func (h *Hash) Scan(src any) error {
	if src == nil {
		return nil
	} else if buf, ok := src.([]byte); ok {
		if len(buf) == 0 {
			return nil
		}
		if len(buf) != HashSize {
			return errors.New("invalid hash size")
		}
		copy((*h)[:], buf)

		return nil
	}
	return errors.New("invalid type")
}

func (h *Hash) Value() (driver.Value, error) {
	return []byte((*h)[:]), nil
}
