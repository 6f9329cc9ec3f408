package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReadCanonicalUvarint(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<64 - 1} {
		buf := binary.AppendUvarint(nil, v)
		got, err := ReadCanonicalUvarint(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("%d: %s", v, err)
		}
		if got != v {
			t.Errorf("%d decoded as %d", v, got)
		}
		if UVarInt64Size(v) != len(buf) {
			t.Errorf("%d: size %d, encoded %d", v, UVarInt64Size(v), len(buf))
		}
	}
}

func TestReadCanonicalUvarintRejectsPadding(t *testing.T) {
	// 0x80 0x00 decodes to zero but wastes a byte; canonical readers
	// must refuse it
	for _, buf := range [][]byte{
		{0x80, 0x00},
		{0x81, 0x00},
		{0xff, 0x80, 0x00},
	} {
		if _, err := ReadCanonicalUvarint(bytes.NewReader(buf)); !errors.Is(err, ErrNonCanonicalEncoding) {
			t.Errorf("% x: %v", buf, err)
		}
	}
}

func TestReadCanonicalUvarintOverflow(t *testing.T) {
	// eleven continuation bytes cannot fit in 64 bits
	buf := bytes.Repeat([]byte{0xff}, 10)
	buf = append(buf, 0x02)
	if _, err := ReadCanonicalUvarint(bytes.NewReader(buf)); err == nil {
		t.Error("overflowing varint accepted")
	}
}

func TestReadCanonicalUvarintTruncated(t *testing.T) {
	if _, err := ReadCanonicalUvarint(bytes.NewReader([]byte{0x80})); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
	if _, err := ReadCanonicalUvarint(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}
