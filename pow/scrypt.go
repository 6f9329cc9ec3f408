package pow

import (
	"github.com/wattx-core/consensus/types"
	"golang.org/x/crypto/scrypt"
)

// Litecoin parameterization
const (
	scryptN = 1024
	scryptR = 1
	scryptP = 1
)

// HashScrypt Scrypt proof hash over data, which serves as both password
// and salt the way Litecoin does it.
func HashScrypt(data []byte) (result types.Hash, err error) {
	out, err := scrypt.Key(data, data, scryptN, scryptR, scryptP, types.HashSize)
	if err != nil {
		return types.ZeroHash, err
	}
	copy(result[:], out)
	return result, nil
}
