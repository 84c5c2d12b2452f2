// Package shamir implements Shamir secret splitting and Lagrange
// reconstruction over the scalar field of a curve.
package shamir

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/polynomial"
	"github.com/mr-shifu/vsss-lib/core/numbering"
	"github.com/mr-shifu/vsss-lib/core/share"
)

// Split creates limit shares of the secret, any threshold of which
// reconstruct it. Identifiers default to the sequence 1, 2, …, limit.
func Split(group curve.Curve, threshold, limit int, secret curve.Scalar, rand io.Reader) ([]*share.Share, error) {
	return SplitWith(group, threshold, limit, secret, rand, nil)
}

// SplitWith is Split with a caller-chosen participant number generator. A
// nil generator selects the sequential default.
func SplitWith(group curve.Curve, threshold, limit int, secret curve.Scalar, rand io.Reader, gen numbering.ParticipantNumberGenerator) ([]*share.Share, error) {
	shares, poly, err := SplitReturnPolynomial(group, threshold, limit, secret, rand, gen)
	if poly != nil {
		poly.Zeroize()
	}
	return shares, err
}

// SplitReturnPolynomial splits the secret and additionally returns the
// sharing polynomial so verifiable schemes can commit to its coefficients.
// The caller owns the polynomial and must Zeroize it once the commitments
// are made.
func SplitReturnPolynomial(group curve.Curve, threshold, limit int, secret curve.Scalar, rand io.Reader, gen numbering.ParticipantNumberGenerator) ([]*share.Share, *polynomial.Polynomial, error) {
	if err := CheckParams(threshold, limit); err != nil {
		return nil, nil, err
	}
	if gen == nil {
		var err error
		gen, err = numbering.NewSequentialParticipantNumberGenerator(group, nil, nil, limit)
		if err != nil {
			return nil, nil, err
		}
	}
	if gen.Limit() < limit {
		return nil, nil, errors.WithMessagef(share.ErrGeneratorExhausted,
			"shamir: generator yields %d identifiers, %d needed", gen.Limit(), limit)
	}

	poly, err := polynomial.NewPolynomial(group, threshold, secret, rand)
	if err != nil {
		return nil, nil, err
	}

	shares := make([]*share.Share, limit)
	for i := 0; i < limit; i++ {
		x, err := gen.Get(i)
		if err != nil {
			poly.Zeroize()
			return nil, nil, err
		}
		id, err := share.NewIdentifier(x)
		if err != nil {
			poly.Zeroize()
			return nil, nil, err
		}
		y, err := poly.Evaluate(x)
		if err != nil {
			poly.Zeroize()
			return nil, nil, err
		}
		s, err := share.FromFieldElement(id, y)
		if err != nil {
			poly.Zeroize()
			return nil, nil, err
		}
		shares[i] = s
	}
	return shares, poly, nil
}

// Combine reconstructs the secret as a field element from at least 2 shares
// with pairwise distinct nonzero identifiers.
func Combine(group curve.Curve, shares []*share.Share) (curve.Scalar, error) {
	xs, err := xCoordinates(group, shares)
	if err != nil {
		return nil, err
	}
	ys := make([]curve.Scalar, len(shares))
	for i, s := range shares {
		y, err := s.FieldElement(group)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return polynomial.Interpolate(group, xs, ys)
}

// CombineGroup reconstructs the shared value as a group element from shares
// whose values are group elements, e.g. partial BLS signatures.
func CombineGroup(group curve.Curve, shares []*share.Share) (curve.Point, error) {
	xs, err := xCoordinates(group, shares)
	if err != nil {
		return nil, err
	}
	ys := make([]curve.Point, len(shares))
	for i, s := range shares {
		y, err := s.GroupElement(group)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return polynomial.InterpolateGroup(group, xs, ys)
}

// CheckParams validates the threshold/limit pair shared by every scheme.
func CheckParams(threshold, limit int) error {
	if threshold < 2 {
		return errors.WithMessage(share.ErrInvalidParameters, "shamir: threshold must be at least 2")
	}
	if limit < threshold {
		return errors.WithMessage(share.ErrInvalidParameters, "shamir: limit must be at least the threshold")
	}
	if limit > share.MaxShares {
		return errors.WithMessagef(share.ErrInvalidParameters, "shamir: limit exceeds %d", share.MaxShares)
	}
	return nil
}

func xCoordinates(group curve.Curve, shares []*share.Share) ([]curve.Scalar, error) {
	if len(shares) < 2 {
		return nil, errors.WithMessage(share.ErrThresholdNotMet, "shamir: need at least 2 shares")
	}
	xs := make([]curve.Scalar, len(shares))
	seen := make(map[string]struct{}, len(shares))
	for i, s := range shares {
		if s == nil || s.ID.IsZero() {
			return nil, errors.WithMessage(share.ErrZeroIdentifier, "shamir: share with zero identifier")
		}
		idBytes, err := s.ID.Bytes()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[string(idBytes)]; dup {
			return nil, errors.WithMessage(share.ErrDuplicateIdentifier, "shamir: repeated identifier in share set")
		}
		seen[string(idBytes)] = struct{}{}
		xs[i] = s.ID.Scalar()
	}
	return xs, nil
}
