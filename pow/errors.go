package pow

import "errors"

var (
	// ErrDisabledAlgorithm The version's algorithm byte names an algorithm
	// that is not enabled on this network
	ErrDisabledAlgorithm = errors.New("pow: algorithm disabled")

	// ErrAlgorithmBeforeActivation A non-default algorithm byte appeared
	// below the multi-algorithm activation height
	ErrAlgorithmBeforeActivation = errors.New("pow: algorithm used before activation")

	// ErrInvalidTarget The compact target is negative, zero or overflows
	// 256 bits
	ErrInvalidTarget = errors.New("pow: invalid compact target")

	// ErrTargetAboveLimit The decoded target is easier than the algorithm's
	// PoW limit
	ErrTargetAboveLimit = errors.New("pow: target above pow limit")

	// ErrHashAboveTarget The proof hash does not meet the claimed target
	ErrHashAboveTarget = errors.New("pow: hash above target")

	// ErrHasherUnavailable The algorithm needs a backend (RandomX VM, X11
	// chain) that was not configured
	ErrHasherUnavailable = errors.New("pow: hasher not configured")

	// ErrParentSeedUnset A RandomX parent proof arrived before the parent
	// chain seed was announced
	ErrParentSeedUnset = errors.New("pow: parent chain seed not set")

	// ErrUnsupportedParentAlgorithm The parent chain rule for this
	// algorithm cannot be evaluated from an AuxPoW parent header
	ErrUnsupportedParentAlgorithm = errors.New("pow: unsupported parent chain algorithm")

	// ErrUnexpectedAuxProof A proof is attached but the version's AuxPoW
	// bit is clear
	ErrUnexpectedAuxProof = errors.New("pow: unexpected aux proof")

	// ErrAuxPowBeforeActivation An AuxPoW header appeared below the
	// activation height
	ErrAuxPowBeforeActivation = errors.New("pow: aux proof before activation")

	// ErrStandaloneForbidden The network requires merged mining and the
	// header carries no proof
	ErrStandaloneForbidden = errors.New("pow: standalone mining not allowed")

	// ErrParentTimeDrift The parent block's timestamp is too far from the
	// aux header's own time
	ErrParentTimeDrift = errors.New("pow: parent block time drift too large")
)
