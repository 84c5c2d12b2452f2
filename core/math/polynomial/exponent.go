package polynomial

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/share"
)

// Exponent is the commitment polynomial F(X) = C₀ + C₁⋅X + … with
// Cᵢ = cᵢ·gen for the coefficients cᵢ of a Polynomial. It is public and can
// be evaluated without knowledge of the coefficients.
type Exponent struct {
	group        curve.Curve
	generator    curve.Point
	coefficients []curve.Point
}

type rawExponent struct {
	Curve        string   `cbor:"curve"`
	Generator    []byte   `cbor:"generator"`
	Coefficients [][]byte `cbor:"coefficients"`
}

// NewExponent commits to every coefficient of the polynomial under the given
// generator. A nil generator selects the curve base point.
func NewExponent(generator curve.Point, p *Polynomial) *Exponent {
	group := p.Curve()
	if generator == nil {
		generator = group.NewBasePoint()
	}
	coefficients := make([]curve.Point, p.Threshold())
	for i, c := range p.Coefficients() {
		coefficients[i] = c.Act(generator)
	}
	return &Exponent{
		group:        group,
		generator:    group.NewPoint().Set(generator),
		coefficients: coefficients,
	}
}

// NewExponentFromCommitments rebuilds an Exponent from published commitments.
func NewExponentFromCommitments(group curve.Curve, generator curve.Point, commitments []curve.Point) (*Exponent, error) {
	if len(commitments) < 2 {
		return nil, errors.WithMessage(share.ErrInvalidVerifierSet, "polynomial: need at least 2 commitments")
	}
	if generator == nil {
		generator = group.NewBasePoint()
	}
	coefficients := make([]curve.Point, len(commitments))
	for i, c := range commitments {
		coefficients[i] = group.NewPoint().Set(c)
	}
	return &Exponent{
		group:        group,
		generator:    group.NewPoint().Set(generator),
		coefficients: coefficients,
	}, nil
}

// Evaluate computes F(index) with Horner's method in the exponent. Both
// sides of a verification equation are computed fully regardless of input
// values.
func (e *Exponent) Evaluate(index curve.Scalar) (curve.Point, error) {
	if index == nil || index.IsZero() {
		return nil, errors.WithMessage(share.ErrZeroIdentifier, "polynomial: attempt to evaluate exponent at zero")
	}

	result := e.group.NewPoint().Set(e.coefficients[len(e.coefficients)-1])
	for i := len(e.coefficients) - 2; i >= 0; i-- {
		result = index.Act(result)
		result.Add(e.coefficients[i])
	}
	return result, nil
}

// Constant returns a copy of the commitment to the constant coefficient.
func (e *Exponent) Constant() curve.Point {
	return e.group.NewPoint().Set(e.coefficients[0])
}

// Generator returns a copy of the commitment generator.
func (e *Exponent) Generator() curve.Point {
	return e.group.NewPoint().Set(e.generator)
}

// Commitments returns copies of the coefficient commitments.
func (e *Exponent) Commitments() []curve.Point {
	out := make([]curve.Point, len(e.coefficients))
	for i, c := range e.coefficients {
		out[i] = e.group.NewPoint().Set(c)
	}
	return out
}

// Threshold returns the number of commitments.
func (e *Exponent) Threshold() int {
	return len(e.coefficients)
}

// Curve returns the curve the commitments belong to.
func (e *Exponent) Curve() curve.Curve {
	return e.group
}

func (e *Exponent) MarshalBinary() ([]byte, error) {
	raw := rawExponent{
		Curve:        e.group.Name(),
		Coefficients: make([][]byte, len(e.coefficients)),
	}
	gb, err := e.generator.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(share.ErrSerialization, err.Error())
	}
	raw.Generator = gb
	for i, c := range e.coefficients {
		cb, err := c.MarshalBinary()
		if err != nil {
			return nil, errors.WithMessage(share.ErrSerialization, err.Error())
		}
		raw.Coefficients[i] = cb
	}
	data, err := cbor.Marshal(raw)
	if err != nil {
		return nil, errors.WithMessage(share.ErrSerialization, err.Error())
	}
	return data, nil
}

func (e *Exponent) UnmarshalBinary(data []byte) error {
	var raw rawExponent
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	group, err := curve.FromName(raw.Curve)
	if err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	generator := group.NewPoint()
	if err := generator.UnmarshalBinary(raw.Generator); err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	if len(raw.Coefficients) < 2 {
		return errors.WithMessage(share.ErrInvalidVerifierSet, "polynomial: need at least 2 commitments")
	}
	coefficients := make([]curve.Point, len(raw.Coefficients))
	for i, cb := range raw.Coefficients {
		c := group.NewPoint()
		if err := c.UnmarshalBinary(cb); err != nil {
			return errors.WithMessage(share.ErrSerialization, err.Error())
		}
		coefficients[i] = c
	}
	e.group = group
	e.generator = generator
	e.coefficients = coefficients
	return nil
}
