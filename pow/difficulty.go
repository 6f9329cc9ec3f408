package pow

import (
	"github.com/holiman/uint256"
	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/chain"
	"github.com/wattx-core/consensus/params"
	"github.com/wattx-core/consensus/types"
)

// maxSpacingMultiple Cap on how slow a block interval counts as; keeps a
// single stale algorithm from collapsing its difficulty in one step.
const maxSpacingMultiple = 10

// NextWorkRequired The compact target the next algo block must meet, from
// the per-algorithm EMA retarget over ix. With several algorithms enabled
// each one aims at its share of the base spacing, so per-algorithm
// spacing is the base spacing times the enabled count.
func NextWorkRequired(ix *chain.Index, algo algorithm.Algorithm, p *params.Params) (uint32, error) {
	limit := p.PowLimitForAlgorithm(algo)
	limitBits := types.EncodeCompact(limit)

	tip := ix.Tip()
	if tip == nil {
		return limitBits, nil
	}

	last := ix.LastForAlgorithm(tip.Height, algo)
	if last == nil {
		// first block of this algorithm
		return limitBits, nil
	}
	prev := ix.PrevForAlgorithm(last.Height, algo)
	if prev == nil {
		// one block so far, no interval to measure yet
		return last.Bits, nil
	}

	spacing := p.TargetSpacing(tip.Height + 1)
	if n := len(algorithm.Enabled()); n > 1 {
		spacing *= int64(n)
	}

	actual := int64(last.Time) - int64(prev.Time)
	if actual < 0 {
		actual = spacing
	}
	if actual > spacing*maxSpacingMultiple {
		actual = spacing * maxSpacingMultiple
	}

	target, negative, overflow := types.DecodeCompact(last.Bits)
	if negative || overflow || target.IsZero() {
		return 0, ErrInvalidTarget
	}

	// newTarget = target * ((L-1)*T + 2*A) / ((L+1)*T)
	// A == T leaves the target unchanged; each interval moves it by
	// roughly 2/L of the error.
	lookback := p.DifficultyLookback
	numerator := uint256.NewInt(uint64((lookback-1)*spacing + 2*actual))
	denominator := uint256.NewInt(uint64((lookback + 1) * spacing))

	newTarget, over := new(uint256.Int).MulDivOverflow(target, numerator, denominator)
	if over || newTarget.Cmp(limit) > 0 {
		newTarget = limit
	}

	return types.EncodeCompact(newTarget), nil
}
