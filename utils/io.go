package utils

import (
	"io"
)

// ReaderAndByteReader Readers for wire decoding: byte-oriented access for
// varints plus bulk reads for fixed fields.
type ReaderAndByteReader interface {
	io.Reader
	io.ByteReader
}
