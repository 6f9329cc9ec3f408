package params

import (
	"github.com/wattx-core/consensus/types"
)

var mainPowLimit = types.MustHashFromString("0000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
var regtestPowLimit = types.MustHashFromString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

func Mainnet() *Params {
	return &Params{
		Name:               "main",
		PowLimit:           mainPowLimit,
		DifficultyLookback: 60,
		SpacingSchedule: []SpacingStep{
			{Height: 0, Seconds: 120},
		},
		MultiAlgoActivationHeight: 210_000,
		ChainID:                   MainChainID,
		AuxPow: AuxPowParams{
			ActivationHeight:      210_000,
			MaxParentTimeDiff:     7200,
			AllowStandaloneMining: true,
		},
		RandomX: RandomXParams{
			KeyEpochBlocks: 2048,
		},
	}
}

func Testnet() *Params {
	p := Mainnet()
	p.Name = "test"
	p.MultiAlgoActivationHeight = 1000
	p.AuxPow.ActivationHeight = 1000
	return p
}

func Regtest() *Params {
	p := Mainnet()
	p.Name = "regtest"
	p.PowLimit = regtestPowLimit
	p.DifficultyLookback = 2
	p.MultiAlgoActivationHeight = 0
	p.AuxPow.ActivationHeight = 0
	p.RandomX.KeyEpochBlocks = 64
	return p
}
