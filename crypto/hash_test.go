package crypto

import (
	"testing"

	"github.com/wattx-core/consensus/types"
)

func TestDoubleSHA256(t *testing.T) {
	// sha256d of the empty string
	expected := types.MustHashFromString("5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456")
	if DoubleSHA256() != expected {
		t.Error("empty input")
	}

	// concatenation is associative over the chunks
	if DoubleSHA256([]byte("ab"), []byte("c")) != DoubleSHA256([]byte("abc")) {
		t.Error("chunked input diverged")
	}
}

func TestKeccak256(t *testing.T) {
	// the legacy (pre-NIST) padding, as used by Ethereum
	expected := types.MustHashFromString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if Keccak256() != expected {
		t.Error("empty input")
	}
	if Keccak256([]byte("a"), []byte("b")) != Keccak256([]byte("ab")) {
		t.Error("chunked input diverged")
	}
}

func TestSHA3_256(t *testing.T) {
	expected := types.MustHashFromString("a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a")
	if SHA3_256() != expected {
		t.Error("empty input")
	}
	if SHA3_256([]byte("x")) == Keccak256([]byte("x")) {
		t.Error("sha3 and keccak paddings must differ")
	}
}

func BenchmarkKeccak256(b *testing.B) {
	input := make([]byte, 80)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Keccak256(input)
		}
	})
}
