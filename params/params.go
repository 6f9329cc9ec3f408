package params

import (
	"errors"

	"git.gammaspectra.live/P2Pool/go-json"
	"github.com/holiman/uint256"
	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/types"
)

// MainChainID Identifies this chain inside AuxPoW commitments ("WT")
const MainChainID = int32(0x5754)

// AuxPowParams Merged mining consensus parameters.
type AuxPowParams struct {
	// ActivationHeight First height at which AuxPoW headers are accepted
	ActivationHeight uint64 `json:"activation_height"`
	// MaxParentTimeDiff Maximum seconds a parent block timestamp may lag
	// or lead our chain time
	MaxParentTimeDiff int64 `json:"max_parent_time_diff"`
	// AllowStandaloneMining Whether non-merged blocks remain valid after
	// activation
	AllowStandaloneMining bool `json:"allow_standalone_mining"`
}

// SpacingStep Base target spacing in effect from Height onward.
type SpacingStep struct {
	Height  uint64 `json:"height"`
	Seconds int64  `json:"seconds"`
}

// RandomXParams Chain seed rules for the RandomX branch.
type RandomXParams struct {
	// KeyEpochBlocks Blocks per key epoch; the VM reinitializes when the
	// epoch rolls over
	KeyEpochBlocks uint64 `json:"key_epoch_blocks"`
	// GenesisHash Mixed into every epoch key
	GenesisHash types.Hash `json:"genesis_hash"`
}

// Params Read-only consensus parameters consumed by validation and
// difficulty code.
type Params struct {
	Name string `json:"name"`

	// PowLimit Easiest permitted target, big-endian bytes
	PowLimit types.Hash `json:"pow_limit"`
	// AlgoPowLimits Optional per-algorithm overrides keyed by canonical
	// algorithm name; absent entries fall back to PowLimit
	AlgoPowLimits map[string]types.Hash `json:"algo_pow_limits,omitempty"`

	// DifficultyLookback Per-algorithm retarget smoothing window
	DifficultyLookback int64 `json:"difficulty_lookback"`

	// SpacingSchedule Base spacing steps, ascending by height
	SpacingSchedule []SpacingStep `json:"spacing_schedule"`

	// MultiAlgoActivationHeight First height at which non-SHA256D
	// algorithm bytes are accepted
	MultiAlgoActivationHeight uint64 `json:"multi_algo_activation_height"`

	ChainID int32 `json:"chain_id"`

	AuxPow  AuxPowParams  `json:"auxpow"`
	RandomX RandomXParams `json:"randomx"`
}

// TargetSpacing Base spacing at height, before the enabled-algorithm
// multiplier.
func (p *Params) TargetSpacing(height uint64) int64 {
	spacing := int64(0)
	for i := range p.SpacingSchedule {
		if p.SpacingSchedule[i].Height > height {
			break
		}
		spacing = p.SpacingSchedule[i].Seconds
	}
	return spacing
}

// PowLimitForAlgorithm The PoW limit for algo as a 256-bit integer,
// honoring per-algorithm overrides.
func (p *Params) PowLimitForAlgorithm(algo algorithm.Algorithm) *uint256.Int {
	if limit, ok := p.AlgoPowLimits[algorithm.GetInfo(algo).Name]; ok {
		return new(uint256.Int).SetBytes(limit[:])
	}
	return new(uint256.Int).SetBytes(p.PowLimit[:])
}

func (p *Params) Valid() error {
	if p.DifficultyLookback < 2 {
		return errors.New("params: difficulty lookback must be at least 2")
	}
	if len(p.SpacingSchedule) == 0 || p.SpacingSchedule[0].Height != 0 {
		return errors.New("params: spacing schedule must start at height 0")
	}
	for i := 1; i < len(p.SpacingSchedule); i++ {
		if p.SpacingSchedule[i].Height <= p.SpacingSchedule[i-1].Height {
			return errors.New("params: spacing schedule not ascending")
		}
	}
	for i := range p.SpacingSchedule {
		if p.SpacingSchedule[i].Seconds <= 0 {
			return errors.New("params: spacing must be positive")
		}
	}
	if p.PowLimit == types.ZeroHash {
		return errors.New("params: pow limit not set")
	}
	if p.RandomX.KeyEpochBlocks == 0 {
		return errors.New("params: randomx key epoch not set")
	}
	return nil
}

// FromJSON Decodes parameters from JSON, for operator-supplied network
// definitions.
func FromJSON(data []byte) (*Params, error) {
	p := &Params{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if err := p.Valid(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) MarshalJSONBytes() ([]byte, error) {
	return json.Marshal(p)
}
