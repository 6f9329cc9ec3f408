package pow

import (
	"fmt"

	"github.com/wattx-core/consensus/types"
)

// X11RoundFunc One stage of the X11 chain. Takes the previous stage's
// digest, returns at least 32 bytes.
type X11RoundFunc func(data []byte) []byte

// x11RoundNames Canonical stage order, Dash's.
var x11RoundNames = [11]string{
	"blake", "bmw", "groestl", "jh", "keccak", "skein",
	"luffa", "cubehash", "shavite", "simd", "echo",
}

// X11 The eleven-stage hash chain. Stage implementations are injected by
// name so a node built without them simply cannot validate X11 blocks.
type X11 struct {
	rounds [11]X11RoundFunc
}

// NewX11 Assembles the chain. Every canonical stage must be present;
// unknown names are rejected.
func NewX11(rounds map[string]X11RoundFunc) (*X11, error) {
	x := &X11{}
	for name := range rounds {
		found := false
		for _, canonical := range x11RoundNames {
			if name == canonical {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("pow: unknown x11 round %q", name)
		}
	}
	for i, name := range x11RoundNames {
		f, ok := rounds[name]
		if !ok || f == nil {
			return nil, fmt.Errorf("pow: missing x11 round %q", name)
		}
		x.rounds[i] = f
	}
	return x, nil
}

// Hash Applies the eleven stages in order and truncates the final digest
// to 32 bytes.
func (x *X11) Hash(data []byte) (result types.Hash) {
	for _, round := range x.rounds {
		data = round(data)
	}
	copy(result[:], data)
	return result
}
