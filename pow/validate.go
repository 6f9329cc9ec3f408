package pow

import (
	"fmt"

	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/auxpow"
	"github.com/wattx-core/consensus/params"
	"github.com/wattx-core/consensus/pow/equihash"
	"github.com/wattx-core/consensus/types"
)

// Validator Full contextual proof-of-work check for a header at a given
// height. Pure given its inputs; the heavy lifting sits behind the
// dispatcher's backends.
type Validator struct {
	params     *params.Params
	dispatcher *Dispatcher
}

func NewValidator(p *params.Params, d *Dispatcher) *Validator {
	return &Validator{
		params:     p,
		dispatcher: d,
	}
}

// CheckProofOfWork Validates h's proof of work as the block at height.
//
// The order is cheapest first: version and target shape, then the
// Equihash solution if one is due, then the AuxPoW commitment chain, and
// the actual proof hash last.
func (v *Validator) CheckProofOfWork(h *auxpow.BlockHeader, height uint64) error {
	decoded := h.Decoded()

	if !algorithm.IsEnabled(decoded.Algo) {
		return ErrDisabledAlgorithm
	}
	if decoded.Algo != algorithm.DEFAULT && height < v.params.MultiAlgoActivationHeight {
		return ErrAlgorithmBeforeActivation
	}

	target, negative, overflow := types.DecodeCompact(h.Bits)
	if negative || overflow || target.IsZero() {
		return ErrInvalidTarget
	}
	if target.Cmp(v.params.PowLimitForAlgorithm(decoded.Algo)) > 0 {
		return ErrTargetAboveLimit
	}

	if decoded.Algo == algorithm.EQUIHASH {
		if err := equihash.Verify(h.BaseBytes(), h.EquihashSolution); err != nil {
			return fmt.Errorf("pow: %w", err)
		}
	}

	var powHash types.Hash
	var err error

	if decoded.HasAuxPow {
		if height < v.params.AuxPow.ActivationHeight {
			return ErrAuxPowBeforeActivation
		}
		if h.Proof == nil {
			return auxpow.ErrMissingAuxProof
		}
		if !algorithm.GetInfo(decoded.Algo).SupportsMergedMining {
			return ErrUnsupportedParentAlgorithm
		}
		if err = v.checkParentTime(h); err != nil {
			return err
		}
		if err = h.Proof.Check(h.Hash(), v.params.ChainID); err != nil {
			return err
		}
		powHash, err = v.dispatcher.ParentPowHash(&h.Proof.Parent, decoded.Algo)
	} else {
		if h.Proof != nil {
			return ErrUnexpectedAuxProof
		}
		if height >= v.params.AuxPow.ActivationHeight && !v.params.AuxPow.AllowStandaloneMining {
			return ErrStandaloneForbidden
		}
		powHash, err = v.dispatcher.PowHash(&h.Header, height)
	}
	if err != nil {
		return err
	}

	if !types.HashMeetsTarget(powHash, target) {
		return ErrHashAboveTarget
	}
	return nil
}

func (v *Validator) checkParentTime(h *auxpow.BlockHeader) error {
	maxDiff := v.params.AuxPow.MaxParentTimeDiff
	if maxDiff <= 0 {
		return nil
	}
	diff := int64(h.Proof.Parent.Timestamp) - int64(h.Time)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDiff {
		return ErrParentTimeDrift
	}
	return nil
}
