package polynomial

import (
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/share"
)

// Lagrange returns the Lagrange basis coefficients at 0 for the given
// x-coordinates:
//
//	λᵢ = ∏_{j≠i} xⱼ ⋅ (xⱼ - xᵢ)⁻¹
//
// The x-coordinates are public, so the variable-time inversions here do not
// touch secret material. Zero or duplicate coordinates are rejected.
func Lagrange(group curve.Curve, xs []curve.Scalar) ([]curve.Scalar, error) {
	if len(xs) < 2 {
		return nil, errors.WithMessage(share.ErrThresholdNotMet, "polynomial: need at least 2 points")
	}
	for _, x := range xs {
		if x == nil || x.IsZero() {
			return nil, errors.WithMessage(share.ErrZeroIdentifier, "polynomial: zero x-coordinate")
		}
	}

	coefficients := make([]curve.Scalar, len(xs))
	for i := range xs {
		basis := group.NewScalar().SetUInt32(1)
		for j := range xs {
			if j == i {
				continue
			}
			denom := group.NewScalar().Set(xs[j]).Sub(xs[i])
			if denom.IsZero() {
				return nil, errors.WithMessage(share.ErrDuplicateIdentifier, "polynomial: repeated x-coordinate")
			}
			// basis *= xⱼ / (xⱼ - xᵢ)
			basis.Mul(group.NewScalar().Set(xs[j]).Mul(denom.Invert()))
		}
		coefficients[i] = basis
	}
	return coefficients, nil
}

// Interpolate evaluates the interpolation polynomial through (xᵢ, yᵢ) at 0,
// recovering the shared field element.
func Interpolate(group curve.Curve, xs []curve.Scalar, ys []curve.Scalar) (curve.Scalar, error) {
	if len(xs) != len(ys) {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "polynomial: coordinate count mismatch")
	}
	lambdas, err := Lagrange(group, xs)
	if err != nil {
		return nil, err
	}
	result := group.NewScalar()
	for i, y := range ys {
		result.Add(group.NewScalar().Set(lambdas[i]).Mul(y))
	}
	return result, nil
}

// InterpolateGroup evaluates the interpolation polynomial at 0 when the
// y-coordinates are group elements, producing Σ λᵢ·Yᵢ. This supports flows
// where shares act in the group, such as partial BLS signatures.
func InterpolateGroup(group curve.Curve, xs []curve.Scalar, ys []curve.Point) (curve.Point, error) {
	if len(xs) != len(ys) {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "polynomial: coordinate count mismatch")
	}
	lambdas, err := Lagrange(group, xs)
	if err != nil {
		return nil, err
	}
	result := group.NewPoint()
	for i, y := range ys {
		result.Add(lambdas[i].Act(y))
	}
	return result, nil
}
