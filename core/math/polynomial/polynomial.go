package polynomial

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/sample"
	"github.com/mr-shifu/vsss-lib/core/share"
)

// Polynomial represents f(X) = c₀ + c₁⋅X + … + c_{t-1}⋅X^{t-1} with
// coefficients in the scalar field of a curve. The length of the coefficient
// vector equals the sharing threshold t.
type Polynomial struct {
	group        curve.Curve
	coefficients []curve.Scalar
}

// NewPolynomial generates a random polynomial with the given constant term
// and threshold many coefficients. The constant may be zero to support
// refresh protocols; the leading coefficient is resampled until nonzero so
// the effective degree is always t-1. A nil constant is interpreted as 0.
func NewPolynomial(group curve.Curve, threshold int, constant curve.Scalar, rand io.Reader) (*Polynomial, error) {
	if threshold < 2 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "polynomial: threshold must be at least 2")
	}

	coefficients := make([]curve.Scalar, threshold)
	if constant == nil {
		constant = group.NewScalar()
	}
	coefficients[0] = group.NewScalar().Set(constant)

	for i := 1; i < threshold-1; i++ {
		c, err := sample.Scalar(rand, group)
		if err != nil {
			return nil, errors.WithMessage(err, "polynomial: failed to sample coefficient")
		}
		coefficients[i] = c
	}

	leading, err := sample.ScalarNonZero(rand, group)
	if err != nil {
		return nil, errors.WithMessage(err, "polynomial: failed to sample leading coefficient")
	}
	coefficients[threshold-1] = leading

	return &Polynomial{group: group, coefficients: coefficients}, nil
}

// Evaluate computes f(index) with Horner's method. The number of field
// operations depends only on the threshold, never on coefficient or index
// values. Evaluating at 0 would reveal the constant and is rejected.
func (p *Polynomial) Evaluate(index curve.Scalar) (curve.Scalar, error) {
	if index == nil || index.IsZero() {
		return nil, errors.WithMessage(share.ErrZeroIdentifier, "polynomial: attempt to evaluate at zero")
	}

	result := p.group.NewScalar().Set(p.coefficients[len(p.coefficients)-1])
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result.Mul(index).Add(p.coefficients[i])
	}
	return result, nil
}

// Constant returns a copy of the constant coefficient.
func (p *Polynomial) Constant() curve.Scalar {
	return p.group.NewScalar().Set(p.coefficients[0])
}

// Coefficients exposes the coefficient vector. Callers must not retain the
// slice past the lifetime of the polynomial; Zeroize wipes it in place.
func (p *Polynomial) Coefficients() []curve.Scalar {
	return p.coefficients
}

// Threshold returns the number of coefficients.
func (p *Polynomial) Threshold() int {
	return len(p.coefficients)
}

// Curve returns the curve the coefficients belong to.
func (p *Polynomial) Curve() curve.Curve {
	return p.group
}

// Zeroize wipes all coefficients. The polynomial must not be used afterwards.
func (p *Polynomial) Zeroize() {
	for _, c := range p.coefficients {
		if c != nil {
			c.Zero()
		}
	}
}
