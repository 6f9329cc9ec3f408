package pow

import (
	"github.com/wattx-core/consensus/auxpow"
	"github.com/wattx-core/consensus/utils"
)

// CheckProofOfWorkWithLog CheckProofOfWork plus rejection logging for the
// block acceptance path.
func (v *Validator) CheckProofOfWorkWithLog(h *auxpow.BlockHeader, height uint64) error {
	err := v.CheckProofOfWork(h, height)
	if err != nil {
		utils.Noticef("PoW", "rejected %s block %s at height %d: %s", h.Algorithm(), h.Hash(), height, err)
	} else if utils.IsLogLevelDebug() {
		utils.Debugf("PoW", "accepted %s block %s at height %d", h.Algorithm(), h.Hash(), height)
	}
	return err
}
