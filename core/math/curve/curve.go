package curve

import (
	"encoding"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// Curve represents a cyclic group of prime order together with its scalar
// field. Schemes are generic over this interface and never inspect the
// concrete representation of scalars or points.
type Curve interface {
	// NewScalar returns a new scalar set to 0.
	NewScalar() Scalar

	// NewPoint returns a new point set to the identity element.
	NewPoint() Point

	// NewBasePoint returns a new point set to the group generator.
	NewBasePoint() Point

	// Name returns the name of the curve.
	Name() string

	// ScalarBits returns the number of significant bits of the scalar field order.
	ScalarBits() int

	// SafeScalarBytes returns the number of random bytes that need to be reduced
	// modulo the order to obtain a negligible sampling bias.
	SafeScalarBytes() int

	// Order returns the order of the scalar field as a modulus.
	Order() *saferith.Modulus

	// HashToPoint deterministically maps data to a point on the curve.
	// The mapping is fixed for a given curve and reproducible across runs.
	HashToPoint(data []byte) Point
}

// Scalar represents an element of the scalar field associated to a Curve.
//
// Arithmetic methods mutate the receiver and return it to allow chaining.
// Act and ActOnBase return fresh points and leave their operands untouched.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	// Invert replaces the receiver with its multiplicative inverse.
	// The result is undefined when the receiver is 0; callers check IsZero first.
	Invert() Scalar
	Negate() Scalar
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	SetUInt32(uint32) Scalar
	// Equal performs a constant-time comparison.
	Equal(Scalar) bool
	IsZero() bool
	// Act returns the receiver times the given point.
	Act(Point) Point
	// ActOnBase returns the receiver times the group generator.
	ActOnBase() Point
	// Zero wipes the receiver by setting it to 0.
	Zero() Scalar
}

// Point represents an element of the group associated to a Curve.
//
// Add, Sub and Negate mutate the receiver and return it.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	// Equal performs a constant-time comparison.
	Equal(Point) bool
	IsIdentity() bool
}

// FromName returns the curve registered under the given name.
func FromName(name string) (Curve, error) {
	switch name {
	case "secp256k1":
		return Secp256k1{}, nil
	case "edwards25519":
		return Edwards25519{}, nil
	case "ristretto255":
		return Ristretto255{}, nil
	default:
		return nil, errors.Errorf("curve: unsupported curve %q", name)
	}
}
