package algorithm

// Block version layout: bits 0-7 generic version signaling, bits 8-15 the
// algorithm byte, bit 16 flags an attached AuxPoW proof. Remaining bits
// are reserved and ignored here.

const (
	// AuxPowVersionFlag Version bit marking a header that carries an
	// AuxPoW proof on the wire
	AuxPowVersionFlag = int32(0x00010000)

	algorithmShift = 8
	algorithmMask  = int32(0x0000FF00)
)

// FromVersion Extracts the algorithm from a block version word. The
// reserved byte 0xFF decodes to INVALID so such headers fail the enabled
// check instead of masquerading as SHA256D. Any other byte without a
// registry entry decodes to SHA256D: pre multi-algorithm blocks carried
// arbitrary signaling bits there.
func FromVersion(version int32) Algorithm {
	algo := Algorithm(version >> algorithmShift & 0xFF)
	if algo == INVALID {
		return INVALID
	}
	if int(algo) < len(algorithmInfo) {
		return algo
	}
	return SHA256D
}

// SetVersion Encodes algo into the version word, leaving all other bits
// untouched.
func SetVersion(version int32, algo Algorithm) int32 {
	version &= ^algorithmMask
	version |= int32(algo) << algorithmShift
	return version
}

// HasAuxPow Reports whether the version word flags an AuxPoW payload.
func HasAuxPow(version int32) bool {
	return version&AuxPowVersionFlag != 0
}

// SetAuxPow Sets or clears the AuxPoW flag.
func SetAuxPow(version int32, auxPow bool) int32 {
	if auxPow {
		return version | AuxPowVersionFlag
	}
	return version &^ AuxPowVersionFlag
}

// DecodedVersion A version word parsed once at the validation boundary.
// Internal logic operates on this, never on raw bits.
type DecodedVersion struct {
	// BaseBits Bits 0-7 of the version word
	BaseBits uint8
	Algo     Algorithm
	// HasAuxPow Whether bit 16 flags an attached proof
	HasAuxPow bool
}

func DecodeVersion(version int32) DecodedVersion {
	return DecodedVersion{
		BaseBits:  uint8(version & 0xFF),
		Algo:      FromVersion(version),
		HasAuxPow: HasAuxPow(version),
	}
}
