package ethash

import (
	"errors"
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/wattx-core/consensus/block"
	"github.com/wattx-core/consensus/crypto"
	"github.com/wattx-core/consensus/types"
	"golang.org/x/sync/singleflight"
)

// EpochLength Blocks per DAG epoch
const EpochLength = 30_000

// ErrNoBuilder No DAG backend was injected; consensus validation of
// ETHASH blocks is impossible in this configuration
var ErrNoBuilder = errors.New("ethash: no context builder configured")

// Result Both hashes Ethash produces. The mix hash is needed for block
// submission, not only validation.
type Result struct {
	Final types.Hash
	Mix   types.Hash
}

// Context One epoch's built light cache or full dataset. Compute must be
// safe for concurrent callers; the builder owns the memory.
type Context interface {
	Compute(sealHash types.Hash, nonce uint64) (final, mix types.Hash)
}

// ContextBuilder Builds an epoch context. Building is expensive (the
// light cache alone is tens of megabytes) and is deduplicated by Cache.
type ContextBuilder interface {
	Build(epoch int) (Context, error)
}

// Epoch The DAG epoch covering height.
func Epoch(height uint64) int {
	return int(height / EpochLength)
}

// SealHash Keccak-256 over the header bytes without the nonce.
func SealHash(h *block.Header) types.Hash {
	return crypto.Keccak256(h.SealBytes())
}

// Cache Epoch contexts behind an LRU, with concurrent builds of the same
// epoch collapsed into one. Reads of a built context run in parallel;
// only the build itself is exclusive per epoch.
type Cache struct {
	builder  ContextBuilder
	contexts *lru.Cache[int, Context]
	group    singleflight.Group
}

// NewCache size is the number of epoch contexts kept alive; two covers
// validation around an epoch boundary.
func NewCache(builder ContextBuilder, size int) (*Cache, error) {
	contexts, err := lru.New[int, Context](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		builder:  builder,
		contexts: contexts,
	}, nil
}

func (c *Cache) context(epoch int) (Context, error) {
	if ctx, ok := c.contexts.Get(epoch); ok {
		return ctx, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(epoch), func() (any, error) {
		if ctx, ok := c.contexts.Get(epoch); ok {
			return ctx, nil
		}
		ctx, err := c.builder.Build(epoch)
		if err != nil {
			return nil, fmt.Errorf("ethash: building epoch %d context: %w", epoch, err)
		}
		c.contexts.Add(epoch, ctx)
		return ctx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Context), nil
}

// Hash Computes the Ethash result for a header at height. The header's
// own nonce field is the 64-bit nonce's low word; Ethash nonces larger
// than 32 bits come in through HashSeal directly.
func (c *Cache) Hash(h *block.Header, height uint64) (Result, error) {
	return c.HashSeal(SealHash(h), uint64(h.Nonce), height)
}

// HashSeal Computes the Ethash result for an explicit seal hash and
// nonce.
func (c *Cache) HashSeal(sealHash types.Hash, nonce uint64, height uint64) (Result, error) {
	if c == nil || c.builder == nil {
		return Result{}, ErrNoBuilder
	}

	ctx, err := c.context(Epoch(height))
	if err != nil {
		return Result{}, err
	}

	final, mix := ctx.Compute(sealHash, nonce)
	return Result{Final: final, Mix: mix}, nil
}
