package pow

import (
	"sync"

	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/block"
	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/params"
	"github.com/wattx-core/consensus/pow/ethash"
	"github.com/wattx-core/consensus/pow/randomx"
	"github.com/wattx-core/consensus/types"
)

// Dispatcher Routes a header to the hash function its version byte names.
// The cheap algorithms are built in; the heavy backends (RandomX VMs, the
// Ethash DAG, the X11 chain) are injected and may be absent, in which
// case their algorithms fail with ErrHasherUnavailable instead of
// silently falling back.
type Dispatcher struct {
	params *params.Params

	rx  randomx.Hasher
	eth *ethash.Cache
	x11 *X11

	parentSeedLock sync.RWMutex
	parentSeed     []byte
}

type DispatcherOption func(*Dispatcher)

func WithRandomX(h randomx.Hasher) DispatcherOption {
	return func(d *Dispatcher) {
		d.rx = h
	}
}

func WithEthash(c *ethash.Cache) DispatcherOption {
	return func(d *Dispatcher) {
		d.eth = c
	}
}

func WithX11(x *X11) DispatcherOption {
	return func(d *Dispatcher) {
		d.x11 = x
	}
}

func NewDispatcher(p *params.Params, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		params: p,
	}
	for _, o := range options {
		o(d)
	}
	return d
}

// SetParentSeed Announces the merged-mining parent chain's current
// RandomX seed. Parent proofs cannot be evaluated before the first call.
func (d *Dispatcher) SetParentSeed(seed []byte) {
	d.parentSeedLock.Lock()
	defer d.parentSeedLock.Unlock()
	d.parentSeed = make([]byte, len(seed))
	copy(d.parentSeed, seed)
}

func (d *Dispatcher) currentParentSeed() []byte {
	d.parentSeedLock.RLock()
	defer d.parentSeedLock.RUnlock()
	return d.parentSeed
}

// PowHash The proof hash of a standalone header at height, under the
// algorithm its version byte names.
func (d *Dispatcher) PowHash(h *block.Header, height uint64) (types.Hash, error) {
	algo := h.Algorithm()
	if !algorithm.IsEnabled(algo) {
		return types.ZeroHash, ErrDisabledAlgorithm
	}

	switch algo {
	case algorithm.SHA256D, algorithm.EQUIHASH:
		// Equihash compares SHA256d too; the solution itself is checked
		// separately during validation
		return crypto.DoubleSHA256(h.BaseBytes()), nil

	case algorithm.SCRYPT:
		return HashScrypt(h.BaseBytes())

	case algorithm.KHEAVYHASH:
		return HashKHeavyHash(h.BaseBytes()), nil

	case algorithm.ETHASH:
		result, err := d.eth.Hash(h, height)
		if err != nil {
			return types.ZeroHash, err
		}
		return result.Final, nil

	case algorithm.RANDOMX:
		if d.rx == nil {
			return types.ZeroHash, ErrHasherUnavailable
		}
		key := randomx.SeedKey(height, d.params.RandomX.KeyEpochBlocks, d.params.RandomX.GenesisHash)
		// RandomX hashes the 80-byte mining blob, not the serialized
		// header, so miners and validators agree on the nonce offset.
		blob := h.MiningBlob()
		return d.rx.Hash(key, blob[:])

	case algorithm.X11:
		if d.x11 == nil {
			return types.ZeroHash, ErrHasherUnavailable
		}
		return d.x11.Hash(h.BaseBytes()), nil

	default:
		return types.ZeroHash, ErrDisabledAlgorithm
	}
}

// DegradedHash Diagnostic-only SHA256d of the header, for log lines and
// tooling when a heavy backend is missing. Never a substitute for PowHash
// on a consensus path: validation fails instead of degrading.
func (d *Dispatcher) DegradedHash(h *block.Header) types.Hash {
	return crypto.DoubleSHA256(h.BaseBytes())
}

// ParentPowHash The proof hash of a merged-mining parent header under
// algo, the rule the aux header's algorithm byte selects. Ethash and
// Equihash parents are not expressible through the fixed parent blob and
// are rejected.
func (d *Dispatcher) ParentPowHash(p *block.ParentHeader, algo algorithm.Algorithm) (types.Hash, error) {
	if !algorithm.GetInfo(algo).SupportsMergedMining {
		return types.ZeroHash, ErrUnsupportedParentAlgorithm
	}

	blob := p.HashingBlob()

	switch algo {
	case algorithm.SHA256D:
		return crypto.DoubleSHA256(blob[:]), nil

	case algorithm.SCRYPT:
		return HashScrypt(blob[:])

	case algorithm.KHEAVYHASH:
		return HashKHeavyHash(blob[:]), nil

	case algorithm.RANDOMX:
		if d.rx == nil {
			return types.ZeroHash, ErrHasherUnavailable
		}
		seed := d.currentParentSeed()
		if len(seed) == 0 {
			return types.ZeroHash, ErrParentSeedUnset
		}
		return d.rx.Hash(seed, blob[:])

	case algorithm.X11:
		if d.x11 == nil {
			return types.ZeroHash, ErrHasherUnavailable
		}
		return d.x11.Hash(blob[:]), nil

	default:
		return types.ZeroHash, ErrUnsupportedParentAlgorithm
	}
}
