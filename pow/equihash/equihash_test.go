package equihash

import (
	"errors"
	"testing"
)

func TestSolutionSize(t *testing.T) {
	if SolutionSize != 1344 {
		t.Fatalf("compressed solution size %d", SolutionSize)
	}
	if !IsValidSolutionSize(1344) || IsValidSolutionSize(1343) || IsValidSolutionSize(0) {
		t.Error("solution size check")
	}
}

func TestExpandCompressRoundtrip(t *testing.T) {
	indices := make([]uint32, NumIndices)
	for i := range indices {
		// spread across the full 21-bit range, all distinct
		indices[i] = uint32(i)*4093 + 17
	}

	compressed, err := CompressSolution(indices)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) != SolutionSize {
		t.Fatalf("compressed to %d bytes", len(compressed))
	}

	expanded, err := ExpandSolution(compressed)
	if err != nil {
		t.Fatal(err)
	}
	for i := range indices {
		if expanded[i] != indices[i] {
			t.Fatalf("index %d: %d != %d", i, expanded[i], indices[i])
		}
	}
}

func TestExtractPackBits(t *testing.T) {
	// 21-bit values at unaligned offsets survive a pack/extract cycle
	data := make([]byte, 16)
	for _, tc := range []struct {
		offset uint
		value  uint32
	}{
		{0, 0x1fffff},
		{21, 0x155555},
		{42, 1},
		{63, 0x0aaaaa},
	} {
		packBits(data, tc.offset, IndexBitLength, tc.value)
		if got := extractBits(data, tc.offset, IndexBitLength); got != tc.value {
			t.Errorf("offset %d: got %06x, want %06x", tc.offset, got, tc.value)
		}
	}
}

func TestVerifyWrongSize(t *testing.T) {
	if err := Verify([]byte("header"), nil); !errors.Is(err, ErrWrongSolutionSize) {
		t.Errorf("nil solution: %v", err)
	}
	if err := Verify([]byte("header"), make([]byte, SolutionSize-1)); !errors.Is(err, ErrWrongSolutionSize) {
		t.Errorf("short solution: %v", err)
	}
}

func TestVerifyDuplicateIndices(t *testing.T) {
	// the all-zero solution expands to 512 copies of index 0
	if err := Verify([]byte("header"), make([]byte, SolutionSize)); !errors.Is(err, ErrDuplicateIndex) {
		t.Errorf("expected ErrDuplicateIndex, got %v", err)
	}
}

func TestVerifyIndexOrder(t *testing.T) {
	indices := make([]uint32, NumIndices)
	for i := range indices {
		indices[i] = uint32(NumIndices - i)
	}
	solution, err := CompressSolution(indices)
	if err != nil {
		t.Fatal(err)
	}
	if err = Verify([]byte("header"), solution); !errors.Is(err, ErrIndexOrder) {
		t.Errorf("expected ErrIndexOrder, got %v", err)
	}
}

func TestVerifyNonSolution(t *testing.T) {
	// well-formed but unmined: passes the shape checks and fails on the
	// collision bits
	indices := make([]uint32, NumIndices)
	for i := range indices {
		indices[i] = uint32(i)
	}
	solution, err := CompressSolution(indices)
	if err != nil {
		t.Fatal(err)
	}
	if err = Verify([]byte("header"), solution); err == nil {
		t.Fatal("non-solution accepted")
	}
}

func TestGenerateHashStable(t *testing.T) {
	input := []byte("equihash input")

	var a, b [HashLength]byte
	generateHash(input, 7, a[:])
	generateHash(input, 7, b[:])
	if a != b {
		t.Error("not deterministic")
	}

	generateHash(input, 8, b[:])
	if a == b {
		t.Error("index not bound into the hash")
	}
}
