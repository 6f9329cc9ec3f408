package auxpow

import "errors"

var (
	// ErrChainIDMismatch The proof was built for a different aux chain
	ErrChainIDMismatch = errors.New("auxpow: chain id mismatch")
	// ErrCommitmentNotFound No merge-mining tag in the parent coinbase
	ErrCommitmentNotFound = errors.New("auxpow: commitment not found in coinbase")
	// ErrCommitmentMismatch The embedded commitment does not bind this aux block
	ErrCommitmentMismatch = errors.New("auxpow: commitment mismatch")
	// ErrCoinbaseMerkleMismatch The coinbase inclusion proof does not reach the parent Merkle root
	ErrCoinbaseMerkleMismatch = errors.New("auxpow: coinbase merkle proof failed")
	// ErrMalformedCoinbase The parent coinbase has no inputs
	ErrMalformedCoinbase = errors.New("auxpow: malformed coinbase")
	// ErrMissingAuxProof The header version flags AuxPoW but no proof is attached
	ErrMissingAuxProof = errors.New("auxpow: flagged header carries no proof")
)
