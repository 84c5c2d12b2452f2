package share

import "errors"

// Error taxonomy shared by all sharing schemes. Callers match with errors.Is;
// call sites attach context with github.com/pkg/errors.
var (
	ErrInvalidParameters   = errors.New("invalid sharing parameters")
	ErrDuplicateIdentifier = errors.New("duplicate share identifier")
	ErrZeroIdentifier      = errors.New("share identifier is zero")
	ErrInvalidShare        = errors.New("invalid share")
	ErrThresholdNotMet     = errors.New("not enough shares to reconstruct")
	ErrInvalidVerifierSet  = errors.New("invalid verifier set")
	ErrVerificationFailed  = errors.New("share verification failed")
	ErrSerialization       = errors.New("serialization failed")
	ErrGeneratorExhausted  = errors.New("participant number generator exhausted")
)

// MaxShares is the maximum number of shares a single split may produce.
const MaxShares = 255
