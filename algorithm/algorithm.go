package algorithm

import (
	"strings"
)

// Algorithm Mining algorithm identifier as carried in bits 8-15 of the
// block version.
type Algorithm uint8

const (
	SHA256D    = Algorithm(0x00) // Double SHA-256 (Bitcoin)
	SCRYPT     = Algorithm(0x01) // Scrypt (Litecoin) - N=1024, r=1, p=1
	ETHASH     = Algorithm(0x02) // Ethash (Ethereum)
	RANDOMX    = Algorithm(0x03) // RandomX (Monero)
	EQUIHASH   = Algorithm(0x04) // Equihash 200,9 (ZCash)
	X11        = Algorithm(0x05) // X11 chain (Dash)
	GHOSTRIDER = Algorithm(0x06) // GhostRider (Raptoreum) - reserved for future
	KHEAVYHASH = Algorithm(0x07) // kHeavyHash (Kaspa)

	INVALID = Algorithm(0xFF)

	// DEFAULT Algorithm when none is specified
	DEFAULT = SHA256D
)

// Info Immutable algorithm metadata.
type Info struct {
	Algo        Algorithm
	Name        string
	Description string
	Enabled     bool
	// SupportsMergedMining Whether AuxPoW proofs may reference a parent
	// chain mined with this algorithm
	SupportsMergedMining bool
	// DifficultyMultiplier Relative difficulty scaling, 1000 = 1.0x
	DifficultyMultiplier uint32
}

var invalidInfo = Info{
	Algo:        INVALID,
	Name:        "invalid",
	Description: "Invalid algorithm",
}

// order matters for Enabled()
var algorithmInfo = []Info{
	{SHA256D, "sha256d", "Double SHA-256 (Bitcoin-compatible)", true, true, 1000},
	{SCRYPT, "scrypt", "Scrypt N=1024 (Litecoin-compatible)", true, true, 1000},
	{ETHASH, "ethash", "Ethash (Ethereum/Altcoinchain-compatible)", true, true, 1000},
	{RANDOMX, "randomx", "RandomX (Monero-compatible, ASIC-resistant)", true, true, 1000},
	{EQUIHASH, "equihash", "Equihash 200,9 (ZCash-compatible)", true, true, 1000},
	{X11, "x11", "X11 hash chain (Dash-compatible)", true, true, 1000},
	{GHOSTRIDER, "ghostrider", "GhostRider (Raptoreum-compatible)", false, true, 1000},
	{KHEAVYHASH, "kheavyhash", "kHeavyHash (Kaspa-compatible, GPU-optimized)", true, true, 1000},
}

var aliases = map[string]Algorithm{
	"sha256":   SHA256D,
	"sha-256":  SHA256D,
	"monero":   RANDOMX,
	"rx":       RANDOMX,
	"zhash":    EQUIHASH,
	"zcash":    EQUIHASH,
	"litecoin": SCRYPT,
	"ltc":      SCRYPT,
	"ethereum": ETHASH,
	"eth":      ETHASH,
	"dash":     X11,
	"kaspa":    KHEAVYHASH,
	"kas":      KHEAVYHASH,
	"heavyhash": KHEAVYHASH,
}

// GetInfo Total function: unknown values yield the INVALID record.
func GetInfo(algo Algorithm) Info {
	if int(algo) < len(algorithmInfo) {
		return algorithmInfo[algo]
	}
	return invalidInfo
}

// ByName Case-insensitive lookup by canonical name or legacy alias.
func ByName(name string) Algorithm {
	name = strings.ToLower(name)

	for i := range algorithmInfo {
		if algorithmInfo[i].Name == name {
			return algorithmInfo[i].Algo
		}
	}

	if algo, ok := aliases[name]; ok {
		return algo
	}

	return INVALID
}

// Enabled All currently enabled algorithms, in identifier order.
func Enabled() []Algorithm {
	result := make([]Algorithm, 0, len(algorithmInfo))
	for i := range algorithmInfo {
		if algorithmInfo[i].Enabled {
			result = append(result, algorithmInfo[i].Algo)
		}
	}
	return result
}

func IsEnabled(algo Algorithm) bool {
	return GetInfo(algo).Enabled
}

func (a Algorithm) String() string {
	return GetInfo(a).Name
}
