// Package feldman implements Feldman's verifiable secret sharing scheme,
// see https://www.cs.umd.edu/~gasarch/TOPICS/secretsharing/feldmanVSS.pdf.
package feldman

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/hash"
	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/polynomial"
	"github.com/mr-shifu/vsss-lib/core/numbering"
	"github.com/mr-shifu/vsss-lib/core/share"
	"github.com/mr-shifu/vsss-lib/core/shamir"
)

// Verifier holds the public commitments {cᵢ·gen} to the coefficients of a
// sharing polynomial. It is immutable once produced.
type Verifier struct {
	exponent *polynomial.Exponent
}

// Split performs a Shamir split and commits to every polynomial coefficient
// under the given generator. A nil generator selects the curve base point.
func Split(group curve.Curve, threshold, limit int, secret curve.Scalar, generator curve.Point, rand io.Reader) ([]*share.Share, *Verifier, error) {
	return SplitWith(group, threshold, limit, secret, generator, rand, nil)
}

// SplitWith is Split with a caller-chosen participant number generator.
func SplitWith(group curve.Curve, threshold, limit int, secret curve.Scalar, generator curve.Point, rand io.Reader, gen numbering.ParticipantNumberGenerator) ([]*share.Share, *Verifier, error) {
	if generator != nil && generator.IsIdentity() {
		return nil, nil, errors.WithMessage(share.ErrInvalidParameters, "feldman: generator is the identity")
	}

	shares, poly, err := shamir.SplitReturnPolynomial(group, threshold, limit, secret, rand, gen)
	if err != nil {
		return nil, nil, err
	}
	defer poly.Zeroize()

	return shares, &Verifier{exponent: polynomial.NewExponent(generator, poly)}, nil
}

// NewVerifier rebuilds a verifier from published commitments. A nil
// generator selects the curve base point.
func NewVerifier(group curve.Curve, generator curve.Point, commitments []curve.Point) (*Verifier, error) {
	if len(commitments) < 2 {
		return nil, errors.WithMessage(share.ErrInvalidVerifierSet, "feldman: need at least 2 commitments")
	}
	for _, c := range commitments {
		if c == nil {
			return nil, errors.WithMessage(share.ErrInvalidVerifierSet, "feldman: missing commitment")
		}
	}
	// Inner commitments may be the identity (a zero coefficient, or a zero
	// secret during refresh), but an identity leading commitment would drop
	// the effective degree below threshold-1.
	if commitments[len(commitments)-1].IsIdentity() {
		return nil, errors.WithMessage(share.ErrInvalidVerifierSet, "feldman: leading commitment is the identity")
	}
	exponent, err := polynomial.NewExponentFromCommitments(group, generator, commitments)
	if err != nil {
		return nil, err
	}
	return &Verifier{exponent: exponent}, nil
}

// Verify checks that the share lies on the committed polynomial:
//
//	y·gen == Σ xⁱ·Cᵢ
//
// Both sides are computed fully before the constant-time comparison, so the
// time to reject does not depend on where a mismatch occurs.
func (v *Verifier) Verify(s *share.Share) error {
	if s == nil || s.ID.IsZero() {
		return errors.WithMessage(share.ErrZeroIdentifier, "feldman: share with zero identifier")
	}
	group := v.exponent.Curve()
	y, err := s.FieldElement(group)
	if err != nil {
		return err
	}
	x := s.ID.Scalar()

	rhs, err := v.exponent.Evaluate(x)
	if err != nil {
		return err
	}
	lhs := y.Act(v.exponent.Generator())

	if !lhs.Equal(rhs) {
		return errors.WithMessage(share.ErrVerificationFailed, "feldman: share does not match commitments")
	}
	return nil
}

// Generator returns a copy of the commitment generator.
func (v *Verifier) Generator() curve.Point {
	return v.exponent.Generator()
}

// Commitments returns copies of the coefficient commitments.
func (v *Verifier) Commitments() []curve.Point {
	return v.exponent.Commitments()
}

// Threshold returns the number of commitments.
func (v *Verifier) Threshold() int {
	return v.exponent.Threshold()
}

// Curve returns the curve the commitments belong to.
func (v *Verifier) Curve() curve.Curve {
	return v.exponent.Curve()
}

// SKI returns a stable identifier for the verifier set, derived from its
// commitments.
func (v *Verifier) SKI() []byte {
	h := hash.New("vsss-feldman-verifier")
	_ = h.WriteAny(v.exponent.Generator())
	for _, c := range v.exponent.Commitments() {
		_ = h.WriteAny(c)
	}
	return h.Sum()
}

func (v *Verifier) MarshalBinary() ([]byte, error) {
	return v.exponent.MarshalBinary()
}

func (v *Verifier) UnmarshalBinary(data []byte) error {
	exponent := &polynomial.Exponent{}
	if err := exponent.UnmarshalBinary(data); err != nil {
		return err
	}
	v.exponent = exponent
	return nil
}
